package report

import (
	"context"

	"github.com/testproject-io/robotkeywords/lib/config"
	"github.com/testproject-io/robotkeywords/lib/defaults"

	"github.com/gravitational/trace"
)

// Reporter records keyword steps and test results in the reporting service
type Reporter interface {
	// Step reports a single keyword step
	Step(ctx context.Context, step Step) error
	// Test reports the outcome of a finished test
	Test(ctx context.Context, result TestResult) error
	// DisableCommandReports toggles the reporting of raw driver commands
	DisableCommandReports(ctx context.Context, disabled bool) error
	// ExcludeTestNames lists test names that are never reported
	ExcludeTestNames(names ...string)
	// Close ends the reporting session
	Close(ctx context.Context) error
}

// Step describes a single reported step
type Step struct {
	// Description is the step headline, e.g. "Click Element: id:login"
	Description string `json:"description"`
	// Message is the step details
	Message string `json:"message"`
	// Passed is the step outcome
	Passed bool `json:"passed"`
	// Screenshot requests a screenshot to be attached to the step
	Screenshot bool `json:"-"`
}

// TestResult describes a finished test
type TestResult struct {
	// Name is the test name
	Name string `json:"name"`
	// Passed is the test outcome
	Passed bool `json:"passed"`
	// Message optionally describes the failure
	Message string `json:"message,omitempty"`
}

// ScreenshotFunc captures the current browser viewport as PNG
type ScreenshotFunc func(ctx context.Context) ([]byte, error)

// Config defines the reporting session
type Config struct {
	// AgentURL is the address of the reporting agent
	AgentURL string `json:"agent_url" env:"TP_AGENT_URL"`
	// Token is the development token used to authenticate with the agent
	Token string `json:"dev_token" env:"TP_DEV_TOKEN"`
	// ProjectName groups reports of the same project
	ProjectName string `json:"project_name" env:"TP_PROJECT_NAME"`
	// JobName groups reports of the same job
	JobName string `json:"job_name" env:"TP_JOB_NAME"`
	// Disabled turns reporting to the agent off
	Disabled bool `json:"disable_reports"`
	// Timeout limits a single request to the agent
	Timeout *config.Timeout `json:"timeout"`
}

// CheckAndSetDefaults validates the config and fills in defaults
func (r *Config) CheckAndSetDefaults() error {
	if r.AgentURL == "" {
		r.AgentURL = defaults.AgentURL
	}
	if r.ProjectName == "" {
		r.ProjectName = defaults.ProjectName
	}
	if r.JobName == "" {
		r.JobName = defaults.JobName
	}
	if r.Timeout == nil {
		r.Timeout = &config.Timeout{Duration: defaults.ReportTimeout}
	}
	if !r.Disabled && r.Token == "" {
		return trace.BadParameter("development token is required, set %v or disable reports", "TP_DEV_TOKEN")
	}
	return nil
}
