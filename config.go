package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/driver/webdriver"
	"github.com/testproject-io/robotkeywords/lib/browser"
	"github.com/testproject-io/robotkeywords/lib/config"
	"github.com/testproject-io/robotkeywords/lib/keywords"
	"github.com/testproject-io/robotkeywords/lib/report"
	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/gravitational/configure"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// loadConfig reads the JSON configuration at path, an empty path
// means an empty configuration. Environment variables override file values.
func loadConfig(path string) (*fileConfig, error) {
	if path == "" {
		return newFileConfig(strings.NewReader("{}"))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	defer f.Close()
	cfg, err := newFileConfig(f)
	if err != nil {
		return nil, trace.Wrap(err, "invalid configuration in %v", path)
	}
	return cfg, nil
}

func newFileConfig(input io.Reader) (*fileConfig, error) {
	var cfg fileConfig
	d := json.NewDecoder(input)
	d.DisallowUnknownFields()
	err := d.Decode(&cfg)
	if err != nil {
		return nil, trace.BadParameter("failed to decode configuration: %v", err)
	}

	err = configure.ParseEnv(&cfg)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	err = config.CheckAndSetDefaults(&cfg)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return &cfg, nil
}

type fileConfig struct {
	// LogLevel is the console log level
	LogLevel string `json:"log_level" env:"TP_LOG_LEVEL"`
	// CloudLog enables logging to Google Cloud Logging
	CloudLog cloudLogConfig `json:"cloud_log"`
	// Library defines the browser library defaults
	Library libraryConfig `json:"library"`
	// Driver defines the session started by init_testproject_driver
	Driver webdriver.Config `json:"driver"`
	// Report defines the reporting session
	Report report.Config `json:"report"`
	// URL is opened on init_testproject_driver
	URL string `json:"url" env:"TP_URL" validate:"omitempty,url"`
	// ScriptTimeout is the asynchronous script timeout applied on init
	ScriptTimeout *config.Timeout `json:"script_timeout"`
}

type cloudLogConfig struct {
	// ProjectID is the Google Cloud project to log to
	ProjectID string `json:"project_id" env:"TP_GCL_PROJECT_ID"`
	// CredentialsFile is an optional service account key file
	CredentialsFile string `json:"credentials_file" env:"GOOGLE_APPLICATION_CREDENTIALS" validate:"omitempty,file"`
}

type libraryConfig struct {
	Timeout      *config.Timeout `json:"timeout"`
	ImplicitWait *config.Timeout `json:"implicit_wait"`
	Speed        *config.Timeout `json:"speed"`
	// ScreenshotDir is a local directory or s3://bucket/prefix
	ScreenshotDir    string `json:"screenshot_dir" env:"TP_SCREENSHOT_DIR"`
	ScreenshotRegion string `json:"screenshot_region" env:"AWS_REGION"`
	RunOnFailure     string `json:"run_on_failure" env:"TP_RUN_ON_FAILURE"`
}

func (r *fileConfig) CheckAndSetDefaults() error {
	_, err := xlog.ParseLevel(r.LogLevel)
	return trace.Wrap(err)
}

// level returns the console log level, the configuration is validated already
func (r *fileConfig) level() logrus.Level {
	level, _ := xlog.ParseLevel(r.LogLevel)
	return level
}

func (r *fileConfig) browserConfig(log logrus.FieldLogger) browser.Config {
	return browser.Config{
		Timeout:          duration(r.Library.Timeout),
		ImplicitWait:     duration(r.Library.ImplicitWait),
		Speed:            duration(r.Library.Speed),
		ScreenshotDir:    r.Library.ScreenshotDir,
		ScreenshotRegion: r.Library.ScreenshotRegion,
		RunOnFailure:     r.Library.RunOnFailure,
		FieldLogger:      log,
	}
}

func (r *fileConfig) initOptions() keywords.InitOptions {
	return keywords.InitOptions{
		Driver:        r.Driver,
		Report:        r.Report,
		URL:           r.URL,
		ScriptTimeout: duration(r.ScriptTimeout),
	}
}

func duration(t *config.Timeout) time.Duration {
	if t == nil {
		return 0
	}
	return t.Duration
}
