package webdriver

import (
	"context"

	"github.com/testproject-io/robotkeywords/lib/constants"

	"github.com/gravitational/trace"
	"github.com/sclevine/agouti"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
)

// Config defines how a browser session is started
type Config struct {
	// Browser is the browser name or alias, e.g. chrome, ff, headlessfirefox, generic
	Browser string `json:"browser" env:"TP_BROWSER"`
	// RemoteURL is the WebDriver hub to connect to. Without it a local
	// driver service is started for the browser
	RemoteURL string `json:"remote_url" env:"TP_REMOTE_URL"`
	// DriverPath overrides the binary of the local driver service
	DriverPath string `json:"driver_path" env:"TP_DRIVER_PATH"`
	// DesiredCapabilities is a JSON object or a "key:value,key2:value2" string
	DesiredCapabilities interface{} `json:"desired_capabilities"`
}

// Factory starts a browser session
type Factory func(ctx context.Context, config Config) (*Session, error)

// Session is a started browser session.
// WebDriver is nil for generic sessions.
type Session struct {
	selenium.WebDriver
	// Browser is the browser family of the session
	Browser Browser
	// Capabilities are the capabilities the session was requested with
	Capabilities selenium.Capabilities

	service *agouti.WebDriver
	log     logrus.FieldLogger
}

// IsGeneric returns true for sessions without a browser
func (r *Session) IsGeneric() bool {
	return r.Browser == Generic
}

// Close quits the browser and stops the local driver service
func (r *Session) Close() error {
	var errors []error
	if r.WebDriver != nil {
		if err := r.WebDriver.Quit(); err != nil {
			errors = append(errors, trace.Wrap(err))
		}
	}
	if r.service != nil {
		if err := r.service.Stop(); err != nil {
			errors = append(errors, trace.Wrap(err))
		}
	}
	if r.log != nil {
		r.log.Debug("Session closed.")
	}
	return trace.NewAggregate(errors...)
}

// New starts a browser session for config
func New(ctx context.Context, config Config) (*Session, error) {
	return NewWithLogger(ctx, config, logrus.StandardLogger())
}

// NewWithLogger starts a browser session for config logging to log
func NewWithLogger(ctx context.Context, config Config, log logrus.FieldLogger) (*Session, error) {
	desired, err := ParseCapabilities(config.DesiredCapabilities)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	caps, browser, err := BuildCapabilities(config.Browser, desired)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	log = log.WithField(constants.FieldBrowser, browser)
	if browser == Generic {
		log.Info("Generic session created.")
		return &Session{Browser: Generic, log: log}, nil
	}

	session := &Session{Browser: browser, Capabilities: caps, log: log}
	url := config.RemoteURL
	if url == "" {
		session.service, err = startService(browser, config.DriverPath)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		url = session.service.URL()
	}
	if err := ctx.Err(); err != nil {
		session.Close()
		return nil, trace.Wrap(err)
	}

	log.WithField("url", url).Debug("Connecting to WebDriver.")
	session.WebDriver, err = selenium.NewRemote(caps, url)
	if err != nil {
		session.Close()
		return nil, trace.Wrap(err, "failed to start %v session", browser)
	}
	log.WithField("url", url).Info("Browser session started.")
	return session, nil
}
