package keywords

import (
	"context"
	"fmt"
	"time"

	"github.com/testproject-io/robotkeywords/driver/webdriver"
	"github.com/testproject-io/robotkeywords/lib/defaults"
	"github.com/testproject-io/robotkeywords/lib/report"
	"github.com/testproject-io/robotkeywords/lib/version"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// InitOptions defines the session started by InitDriver
type InitOptions struct {
	// Driver defines the browser session
	Driver webdriver.Config
	// Report defines the reporting session
	Report report.Config
	// URL is opened once the browser is started
	URL string
	// ScriptTimeout limits asynchronous scripts, defaults.ScriptTimeout when zero
	ScriptTimeout time.Duration
}

// CheckAndSetDefaults validates the options and fills in defaults
func (r *InitOptions) CheckAndSetDefaults() error {
	if r.Driver.Browser == "" {
		r.Driver.Browser = defaults.Browser
	}
	if r.ScriptTimeout == 0 {
		r.ScriptTimeout = defaults.ScriptTimeout
	}
	if r.ScriptTimeout < 0 {
		return trace.BadParameter("timeout must be >= 0")
	}
	return trace.Wrap(r.Report.CheckAndSetDefaults())
}

// InitDriver starts the browser session with its reporting session.
//
// Browser sessions get the script timeout applied, open URL and become the
// current browser under the alias testproject_driver. Generic sessions
// only report that they were created.
func (l *Library) InitDriver(ctx context.Context, opts InitOptions) error {
	if err := opts.CheckAndSetDefaults(); err != nil {
		return trace.Wrap(err)
	}
	sdkVersion, err := version.Get()
	if err != nil {
		return trace.Wrap(err)
	}
	l.WithField("version", sdkVersion).Info("Initializing TestProject Library.")

	session, err := l.sessions(ctx, opts.Driver)
	if err != nil {
		return trace.Wrap(err)
	}
	if l.reporter == nil {
		l.reporter, err = l.reporters(ctx, report.AgentConfig{
			Config:      opts.Report,
			SDKVersion:  sdkVersion,
			Screenshot:  l.browser.Screenshot,
			FieldLogger: l.FieldLogger,
		})
		if err != nil {
			session.Close()
			return trace.Wrap(err)
		}
	}
	l.replaceSession(session)
	l.generic = session.IsGeneric()
	l.reporter.ExcludeTestNames(defaults.ExcludedTestNames...)

	if l.generic {
		return trace.Wrap(l.reporter.Step(ctx, report.Step{
			Description: "New session created",
			Message:     "Generic Driver",
			Passed:      true,
		}))
	}
	return trace.Wrap(l.initBrowser(ctx, session, opts))
}

func (l *Library) initBrowser(ctx context.Context, session *webdriver.Session, opts InitOptions) error {
	log := l.WithFields(logrus.Fields{"browser": session.Browser, "url": opts.URL})
	if err := l.reporter.DisableCommandReports(ctx, true); err != nil {
		log.WithError(err).Warn("Failed to disable command reports.")
	}
	if err := session.SetAsyncScriptTimeout(opts.ScriptTimeout); err != nil {
		return trace.Wrap(err)
	}
	l.report(ctx, report.Step{
		Description: fmt.Sprintf("Time out was set to %v millisecond", opts.ScriptTimeout.Milliseconds()),
		Message:     "Set timeout",
		Passed:      true,
	})
	if err := session.Get(opts.URL); err != nil {
		l.report(ctx, report.Step{
			Description: fmt.Sprintf("Failed to open %v", opts.URL),
			Message:     fmt.Sprintf("Failed to open %v", opts.URL),
		})
		return trace.Wrap(err, "failed to open %v", opts.URL)
	}
	l.report(ctx, report.Step{
		Description: fmt.Sprintf("Successfully navigated to %v", opts.URL),
		Message:     fmt.Sprintf("Navigated to %v", opts.URL),
		Passed:      true,
	})
	if _, err := l.browser.RegisterDriver(session.WebDriver, defaults.DriverAlias); err != nil {
		return trace.Wrap(err)
	}
	l.registered = true
	log.Info("Driver initialized.")
	return nil
}

// replaceSession makes session current. A previous session whose browser
// was never registered is closed right away, otherwise it is closed with
// the library as its browser may still be in use.
func (l *Library) replaceSession(session *webdriver.Session) {
	if l.session != nil {
		if l.registered {
			l.retired = append(l.retired, l.session)
		} else if err := l.session.Close(); err != nil {
			l.WithError(err).Warn("Failed to close previous session.")
		}
	}
	l.session = session
	l.registered = false
}

// initOptions overlays keyword arguments on the configured InitDriver defaults
func (l *Library) initOptions(a *args) InitOptions {
	opts := l.initDefaults
	if v := a.str("browser"); v != "" {
		opts.Driver.Browser = v
	}
	if v := a.str("remote_url"); v != "" {
		opts.Driver.RemoteURL = v
	}
	if v := a.str("driver_path"); v != "" {
		opts.Driver.DriverPath = v
	}
	if v := a.str("desired_capabilities"); v != "" {
		opts.Driver.DesiredCapabilities = v
	}
	if v := a.str("url"); v != "" {
		opts.URL = v
	}
	if v := a.millis("timeout"); v != 0 {
		opts.ScriptTimeout = v
	}
	if v := a.str("project_name"); v != "" {
		opts.Report.ProjectName = v
	}
	if v := a.str("job_name"); v != "" {
		opts.Report.JobName = v
	}
	if v := a.str("dev_token"); v != "" {
		opts.Report.Token = v
	}
	if a.flag("disabled_reports") {
		opts.Report.Disabled = true
	}
	return opts
}
