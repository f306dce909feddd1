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

// Package keywords adapts the browser library to keyword calls that are
// reported step by step to the reporting agent.
//
// Every keyword runs the matching browser action and reports a step named
// after the keyword. Failures are reported with the failure reason, trigger
// the run-on-failure keyword and are returned to the caller unchanged.
package keywords

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/driver/webdriver"
	"github.com/testproject-io/robotkeywords/lib/browser"
	"github.com/testproject-io/robotkeywords/lib/constants"
	"github.com/testproject-io/robotkeywords/lib/report"

	"github.com/gravitational/trace"
	"github.com/kr/pretty"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
)

// ReporterFactory opens a reporting session
type ReporterFactory func(ctx context.Context, config report.AgentConfig) (report.Reporter, error)

// Config defines the keyword library
type Config struct {
	// Browser is the browser library keywords forward to
	Browser *browser.Library
	// Sessions starts browser sessions, webdriver.New when nil
	Sessions webdriver.Factory
	// Reporters opens reporting sessions, report.New when nil
	Reporters ReporterFactory
	// Reporter is an already open reporting session. When set, InitDriver
	// reports to it instead of opening a new one
	Reporter report.Reporter
	// Init holds defaults of InitDriver options not given as keyword arguments
	Init InitOptions
	// Clock returns the current time, time.Now when nil
	Clock func() time.Time
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// CheckAndSetDefaults validates the config and fills in defaults
func (r *Config) CheckAndSetDefaults() error {
	if r.Browser == nil {
		return trace.BadParameter("missing Browser")
	}
	if r.FieldLogger == nil {
		r.FieldLogger = logrus.StandardLogger()
	}
	if r.Sessions == nil {
		log := r.FieldLogger
		r.Sessions = func(ctx context.Context, config webdriver.Config) (*webdriver.Session, error) {
			return webdriver.NewWithLogger(ctx, config, log)
		}
	}
	if r.Reporters == nil {
		r.Reporters = report.New
	}
	if r.Clock == nil {
		r.Clock = time.Now
	}
	return nil
}

// New returns a new keyword library
func New(config Config) (*Library, error) {
	if err := config.CheckAndSetDefaults(); err != nil {
		return nil, trace.Wrap(err)
	}
	l := &Library{
		FieldLogger:    config.FieldLogger,
		browser:        config.Browser,
		sessions:       config.Sessions,
		reporters:      config.Reporters,
		reporter:       config.Reporter,
		initDefaults:   config.Init,
		screenshotName: fmt.Sprintf("TestProject-%v.png", config.Clock().Format("2006_01_02_15_04_05")),
	}
	l.registry = l.buildRegistry()
	return l, nil
}

// Library runs keywords against the browser library and reports them
type Library struct {
	logrus.FieldLogger

	browser   *browser.Library
	sessions  webdriver.Factory
	reporters ReporterFactory
	reporter  report.Reporter
	session   *webdriver.Session
	registry  map[string]*keyword
	// initDefaults are InitDriver options used for missing keyword arguments
	initDefaults InitOptions
	// screenshotName is the file name of screenshots captured without one
	screenshotName string
	// registered is set once the browser of session is owned by the browser library
	registered bool
	// retired are replaced sessions whose browsers the browser library still owns
	retired []*webdriver.Session
	// generic is set for sessions without a browser
	generic bool
	// onFailure is set while the run-on-failure keyword runs
	onFailure bool
}

// Browser returns the browser library keywords forward to
func (l *Library) Browser() *browser.Library {
	return l.browser
}

// Reporter returns the reporting session, nil before the driver is initialized
func (l *Library) Reporter() report.Reporter {
	return l.reporter
}

// IsGeneric returns true when the initialized session has no browser
func (l *Library) IsGeneric() bool {
	return l.generic
}

// DisplayName converts a keyword name like select_from_list_by_value into
// the name used in reports, Select From List By Value
func DisplayName(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// base runs fn as the keyword name and reports the outcome.
// A successful call reports message, or the returned value when it is not empty.
// A failed call is reported with the failure reason, triggers the run-on-failure
// keyword, and its error is returned unchanged.
func (l *Library) base(ctx context.Context, name, message, description string, fn func() (interface{}, error)) (interface{}, error) {
	log := l.WithField(constants.FieldKeyword, name)
	log.Debug("Running keyword.")
	value, err := fn()
	step := report.Step{
		Description: fmt.Sprintf("%v: %v", DisplayName(name), strings.TrimSpace(description)),
		Screenshot:  true,
	}
	if err != nil {
		log.WithError(err).Debug("Keyword failed.")
		step.Message = fmt.Sprintf("Failure reason:\n'%v'", trace.UserMessage(err))
		l.report(ctx, step)
		l.runOnFailure(ctx, name)
		return nil, err
	}
	step.Passed = true
	step.Message = message
	if !isEmpty(value) {
		step.Message = fmt.Sprintf("Returned value: %v", formatValue(value))
	}
	l.report(ctx, step)
	return value, nil
}

// do is base for keywords without a return value
func (l *Library) do(ctx context.Context, name, message, description string, fn func() error) error {
	_, err := l.base(ctx, name, message, description, func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

func (l *Library) getString(ctx context.Context, name, message, description string, fn func() (string, error)) (string, error) {
	value, err := l.base(ctx, name, message, description, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

func (l *Library) getStrings(ctx context.Context, name, message, description string, fn func() ([]string, error)) ([]string, error) {
	value, err := l.base(ctx, name, message, description, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return value.([]string), nil
}

func (l *Library) getInt(ctx context.Context, name, message, description string, fn func() (int, error)) (int, error) {
	value, err := l.base(ctx, name, message, description, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return 0, err
	}
	return value.(int), nil
}

// logSourceOnFailure wraps a check to log the page source at loglevel when it fails.
// An empty loglevel logs at TRACE, NONE disables logging.
func (l *Library) logSourceOnFailure(ctx context.Context, loglevel string, check func() error) func() error {
	return func() error {
		err := check()
		if err == nil {
			return nil
		}
		if loglevel == "" {
			loglevel = constants.LogLevelTrace
		}
		if _, serr := l.browser.LogSource(ctx, loglevel); serr != nil {
			l.WithError(serr).Debug("Failed to log page source.")
		}
		return err
	}
}

// waitMessage describes an explicit wait timeout in step messages
func waitMessage(timeout time.Duration) string {
	if timeout <= 0 {
		return ""
	}
	return fmt.Sprintf("(timeout: %v seconds)", timeout.Seconds())
}

// report sends the step unless there is no reporter or the run-on-failure
// keyword is running. Reporting failures are logged and never fail the keyword.
// Generic sessions never attach screenshots.
func (l *Library) report(ctx context.Context, step report.Step) {
	if l.reporter == nil || l.onFailure {
		return
	}
	if l.generic {
		step.Screenshot = false
	}
	if err := l.reporter.Step(ctx, step); err != nil {
		l.WithError(err).WithField("step", step.Description).Warn("Failed to report step.")
	}
}

// runOnFailure runs the run-on-failure keyword without reporting it
func (l *Library) runOnFailure(ctx context.Context, failed string) {
	keyword := l.browser.RunOnFailure()
	if keyword == "" || l.onFailure || !l.browser.HasBrowser() {
		return
	}
	l.onFailure = true
	defer func() { l.onFailure = false }()
	log := l.WithFields(logrus.Fields{constants.FieldKeyword: failed, "on_failure": keyword})
	if _, err := l.Run(ctx, keyword); err != nil {
		log.WithError(err).Warn("Keyword run on failure failed.")
	}
}

// isEmpty mirrors the falsy values of the keyword runtime: nil, zero
// scalars, and empty strings, slices and maps
func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}
	return false
}

func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case selenium.WebElement:
		return "<WebElement>"
	case []selenium.WebElement:
		return fmt.Sprintf("[%v WebElements]", len(v))
	case fmt.Stringer:
		return v.String()
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Map, reflect.Struct, reflect.Ptr:
		return pretty.Sprintf("%# v", value)
	}
	return fmt.Sprint(value)
}

// CreateStep reports a custom step. Generic sessions never attach screenshots.
func (l *Library) CreateStep(ctx context.Context, description, message string, passed, screenshot bool) error {
	if l.reporter == nil {
		return trace.NotFound("the driver is not initialized, no step can be reported")
	}
	return trace.Wrap(l.reporter.Step(ctx, report.Step{
		Description: description,
		Message:     message,
		Passed:      passed,
		Screenshot:  screenshot && !l.generic,
	}))
}

// OpenBrowser is not supported, browsers are opened with InitDriver
func (l *Library) OpenBrowser(ctx context.Context, url string) error {
	l.deprecated(ctx, "Open Browser")
	return nil
}

// CreateWebdriver is not supported, browsers are opened with InitDriver
func (l *Library) CreateWebdriver(ctx context.Context, driverName, alias string) error {
	l.deprecated(ctx, "Create Webdriver")
	return nil
}

func (l *Library) deprecated(ctx context.Context, name string) {
	if l.reporter != nil {
		l.report(ctx, report.Step{
			Description: name,
			Message:     "This step is deprecated using TestProject library",
			Passed:      true,
		})
	}
	l.Warnf("'%v' is deprecated using TestProject Library, please see official documentation.", name)
}

// EndTest reports the result of a finished test and drops the locator
// strategies that do not persist
func (l *Library) EndTest(ctx context.Context, name string, passed bool, message string) {
	l.browser.EndTest()
	if l.reporter == nil {
		return
	}
	err := l.reporter.Test(ctx, report.TestResult{Name: name, Passed: passed, Message: message})
	if err != nil {
		l.WithError(err).WithField(constants.FieldTest, name).Warn("Failed to report test.")
	}
}

// Close closes all browsers, the session and the reporting session
func (l *Library) Close(ctx context.Context) error {
	var errors []error
	if err := l.browser.CloseAllBrowsers(ctx); err != nil {
		errors = append(errors, err)
	}
	for _, session := range l.retired {
		session.WebDriver = nil
		if err := session.Close(); err != nil {
			errors = append(errors, err)
		}
	}
	l.retired = nil
	if l.session != nil {
		if l.registered {
			// quit with the browser library already
			l.session.WebDriver = nil
		}
		if err := l.session.Close(); err != nil {
			errors = append(errors, err)
		}
		l.session = nil
		l.registered = false
	}
	if l.reporter != nil {
		if err := l.reporter.Close(ctx); err != nil {
			errors = append(errors, err)
		}
	}
	return trace.NewAggregate(errors...)
}
