/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package browser implements browser automation actions over the WebDriver
// protocol: element lookup with locator strategies, element interaction,
// waiting, window and frame control, forms, cookies and JavaScript execution.
//
// Every exported action works on the current browser of the library, which
// is selected among the registered browsers by index or alias.
package browser

import (
	"context"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/defaults"
	"github.com/testproject-io/robotkeywords/lib/screenshot"
	"github.com/testproject-io/robotkeywords/lib/wait"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
)

// Config defines the initial state of the library
type Config struct {
	// Timeout is the default timeout of wait keywords
	Timeout time.Duration
	// ImplicitWait is applied to every registered browser
	ImplicitWait time.Duration
	// Speed is the delay before every browser command
	Speed time.Duration
	// ScreenshotDir is the screenshot location, a local directory or s3://bucket/prefix
	ScreenshotDir string
	// ScreenshotRegion is the AWS region of S3 screenshot locations
	ScreenshotRegion string
	// RunOnFailure is the keyword to run when a keyword fails
	RunOnFailure string
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// CheckAndSetDefaults validates the config and fills in defaults
func (r *Config) CheckAndSetDefaults() error {
	if r.Timeout <= 0 {
		r.Timeout = defaults.SeleniumTimeout
	}
	if r.ImplicitWait < 0 {
		return trace.BadParameter("implicit wait must be >= 0")
	}
	if r.Speed < 0 {
		return trace.BadParameter("speed must be >= 0")
	}
	if r.RunOnFailure == "" {
		r.RunOnFailure = defaults.RunOnFailure
	}
	if r.FieldLogger == nil {
		r.FieldLogger = logrus.StandardLogger()
	}
	return nil
}

// New returns a new library without open browsers
func New(config Config) (*Library, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	store, err := screenshot.New(config.ScreenshotDir, config.ScreenshotRegion)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &Library{
		FieldLogger:  config.FieldLogger,
		cache:        newCache(),
		timeout:      config.Timeout,
		implicitWait: config.ImplicitWait,
		speed:        config.Speed,
		store:        store,
		region:       config.ScreenshotRegion,
		strategies:   map[string]*strategy{},
		runOnFailure: normalizeRunOnFailure(config.RunOnFailure),
	}, nil
}

// Library drives the registered browsers
type Library struct {
	logrus.FieldLogger

	cache        *cache
	timeout      time.Duration
	implicitWait time.Duration
	speed        time.Duration
	store        screenshot.Store
	region       string
	strategies   map[string]*strategy
	runOnFailure string
}

// RegisterDriver adds an open browser session under alias, makes it the
// current browser and returns its index. Indexes start from 1.
func (l *Library) RegisterDriver(wd selenium.WebDriver, alias string) (int, error) {
	if wd == nil {
		return 0, trace.BadParameter("missing driver")
	}
	if l.implicitWait > 0 {
		if err := wd.SetImplicitWaitTimeout(l.implicitWait); err != nil {
			return 0, trace.Wrap(err)
		}
	}
	index := l.cache.register(wd, alias)
	l.WithFields(logrus.Fields{"index": index, "alias": alias}).Debug("Browser registered.")
	return index, nil
}

// current returns the driver of the current browser
func (l *Library) current(ctx context.Context) (selenium.WebDriver, error) {
	wd := l.cache.current()
	if wd == nil {
		return nil, trace.NotFound("no browser is open")
	}
	wait.Sleep(ctx, l.speed)
	if err := ctx.Err(); err != nil {
		return nil, trace.Wrap(err)
	}
	return wd, nil
}

// Driver returns the driver of the current browser
func (l *Library) Driver(ctx context.Context) (selenium.WebDriver, error) {
	return l.current(ctx)
}

// HasBrowser returns true when there is a current browser
func (l *Library) HasBrowser() bool {
	return l.cache.current() != nil
}

// GetSeleniumSpeed returns the delay before every browser command
func (l *Library) GetSeleniumSpeed() time.Duration {
	return l.speed
}

// SetSeleniumSpeed sets the delay before every browser command and returns the previous value
func (l *Library) SetSeleniumSpeed(speed time.Duration) (time.Duration, error) {
	if speed < 0 {
		return 0, trace.BadParameter("speed must be >= 0")
	}
	prev := l.speed
	l.speed = speed
	return prev, nil
}

// GetSeleniumTimeout returns the default timeout of wait keywords
func (l *Library) GetSeleniumTimeout() time.Duration {
	return l.timeout
}

// SetSeleniumTimeout sets the default timeout of wait keywords and returns the previous value
func (l *Library) SetSeleniumTimeout(timeout time.Duration) (time.Duration, error) {
	if timeout <= 0 {
		return 0, trace.BadParameter("timeout must be > 0")
	}
	prev := l.timeout
	l.timeout = timeout
	return prev, nil
}

// GetSeleniumImplicitWait returns the implicit wait applied to browsers
func (l *Library) GetSeleniumImplicitWait() time.Duration {
	return l.implicitWait
}

// SetSeleniumImplicitWait sets the implicit wait of all open browsers and of
// browsers opened later. Returns the previous value.
func (l *Library) SetSeleniumImplicitWait(ctx context.Context, d time.Duration) (time.Duration, error) {
	if d < 0 {
		return 0, trace.BadParameter("implicit wait must be >= 0")
	}
	prev := l.implicitWait
	for _, wd := range l.cache.drivers() {
		if err := wd.SetImplicitWaitTimeout(d); err != nil {
			return prev, trace.Wrap(err)
		}
	}
	l.implicitWait = d
	return prev, nil
}

// SetBrowserImplicitWait sets the implicit wait of the current browser only
func (l *Library) SetBrowserImplicitWait(ctx context.Context, d time.Duration) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.SetImplicitWaitTimeout(d))
}

// RunOnFailure returns the keyword run on failures, empty when disabled
func (l *Library) RunOnFailure() string {
	return l.runOnFailure
}

// RegisterKeywordToRunOnFailure sets the keyword run on failures and returns the previous one.
// NOTHING, NONE or an empty name disable the functionality.
func (l *Library) RegisterKeywordToRunOnFailure(keyword string) string {
	prev := l.runOnFailure
	l.runOnFailure = normalizeRunOnFailure(keyword)
	if l.runOnFailure == "" {
		l.Info("Keyword will not be run on failure.")
	} else {
		l.Infof("%v will be run on failure.", l.runOnFailure)
	}
	if prev == "" {
		return "No keyword"
	}
	return prev
}

// EndTest drops the locator strategies that were not added as persistent
func (l *Library) EndTest() {
	for name, s := range l.strategies {
		if !s.persist {
			delete(l.strategies, name)
		}
	}
}

func normalizeRunOnFailure(keyword string) string {
	switch strings.ToUpper(strings.TrimSpace(keyword)) {
	case "", "NOTHING", "NONE":
		return ""
	}
	return strings.TrimSpace(keyword)
}

// timeoutOr returns timeout or the library timeout when timeout is not positive
func (l *Library) timeoutOr(timeout time.Duration) time.Duration {
	if timeout > 0 {
		return timeout
	}
	return l.timeout
}
