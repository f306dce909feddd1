package report

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"sync"

	"github.com/testproject-io/robotkeywords/lib/constants"
	"github.com/testproject-io/robotkeywords/lib/defaults"
	"github.com/testproject-io/robotkeywords/lib/version"
	"github.com/testproject-io/robotkeywords/lib/wait"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
)

// MinAgentVersion is the oldest agent version the reporter talks to
const MinAgentVersion = ">= 0.64.0"

// AgentConfig defines the parameters of an agent reporting session
type AgentConfig struct {
	Config
	// SDKVersion is the library version announced to the agent
	SDKVersion string
	// Screenshot captures images for steps that request one
	Screenshot ScreenshotFunc
	// Client is the HTTP client, http.DefaultClient when nil
	Client *http.Client
	// FieldLogger specifies the log sink
	logrus.FieldLogger
}

// NewAgentReporter opens a reporting session with the agent
func NewAgentReporter(ctx context.Context, cfg AgentConfig) (*AgentReporter, error) {
	if cfg.FieldLogger == nil {
		cfg.FieldLogger = logrus.StandardLogger()
	}
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: defaults.ReportTimeout}
		if cfg.Timeout != nil {
			cfg.Client.Timeout = cfg.Timeout.Duration
		}
	}
	r := &AgentReporter{
		cfg:      cfg,
		baseURL:  strings.TrimRight(cfg.AgentURL, "/"),
		uuid:     uuid.NewV4().String(),
		excluded: map[string]bool{},
	}
	r.log = cfg.WithField(constants.FieldSession, r.uuid)

	var resp sessionResponse
	err := r.call(ctx, http.MethodPost, "/api/development/session", sessionRequest{
		UUID:        r.uuid,
		ProjectName: cfg.ProjectName,
		JobName:     cfg.JobName,
		SDKVersion:  cfg.SDKVersion,
		Language:    "Go",
	}, &resp)
	if err != nil {
		return nil, trace.Wrap(err, "failed to open a reporting session with %v", r.baseURL)
	}
	if resp.AgentVersion != "" {
		if err := version.Check(resp.AgentVersion, MinAgentVersion); err != nil {
			return nil, trace.Wrap(err, "unsupported agent version %v", resp.AgentVersion)
		}
	}
	r.sessionID = resp.SessionID
	r.log.WithFields(logrus.Fields{
		"agent":   r.baseURL,
		"version": resp.AgentVersion,
		"project": cfg.ProjectName,
		"job":     cfg.JobName,
	}).Info("Reporting session started.")
	return r, nil
}

// AgentReporter reports steps and tests to the reporting agent over HTTP
type AgentReporter struct {
	cfg       AgentConfig
	baseURL   string
	uuid      string
	sessionID string
	log       logrus.FieldLogger

	mu       sync.Mutex
	excluded map[string]bool
}

// SessionID returns the session identifier assigned by the agent
func (r *AgentReporter) SessionID() string {
	return r.sessionID
}

// Step reports a step, attaching a screenshot when requested and available.
// Failure to capture the screenshot does not prevent the step from being reported.
func (r *AgentReporter) Step(ctx context.Context, step Step) error {
	req := stepRequest{
		GUID:        uuid.NewV4().String(),
		Description: step.Description,
		Message:     step.Message,
		Passed:      step.Passed,
	}
	if step.Screenshot && r.cfg.Screenshot != nil {
		image, err := r.cfg.Screenshot(ctx)
		if err != nil {
			r.log.WithError(err).Warn("Failed to capture step screenshot.")
		} else {
			r.log.Debugf("Attaching %v screenshot.", humanize.Bytes(uint64(len(image))))
			req.Screenshot = base64.StdEncoding.EncodeToString(image)
		}
	}
	return trace.Wrap(r.call(ctx, http.MethodPost, r.sessionPath("/report/step"), req, nil))
}

// Test reports the test result unless the test name is excluded
func (r *AgentReporter) Test(ctx context.Context, result TestResult) error {
	if r.isExcluded(result.Name) {
		return nil
	}
	return trace.Wrap(r.call(ctx, http.MethodPost, r.sessionPath("/report/test"), result, nil))
}

// DisableCommandReports updates the session settings of the agent
func (r *AgentReporter) DisableCommandReports(ctx context.Context, disabled bool) error {
	return trace.Wrap(r.call(ctx, http.MethodPut, r.sessionPath("/settings"),
		settingsRequest{CommandReports: !disabled}, nil))
}

// ExcludeTestNames adds names to the list of tests that are not reported
func (r *AgentReporter) ExcludeTestNames(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		r.excluded[name] = true
	}
}

// Close ends the reporting session
func (r *AgentReporter) Close(ctx context.Context) error {
	err := r.call(ctx, http.MethodDelete, r.sessionPath(""), nil, nil)
	if err != nil {
		return trace.Wrap(err)
	}
	r.log.Info("Reporting session closed.")
	return nil
}

func (r *AgentReporter) isExcluded(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.excluded[name]
}

func (r *AgentReporter) sessionPath(suffix string) string {
	return fmt.Sprintf("/api/development/session/%v%v", r.sessionID, suffix)
}

// call sends in as JSON and decodes the response into out.
// Server errors and transport failures are retried, client errors abort immediately.
func (r *AgentReporter) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return trace.Wrap(err)
		}
	}

	retryer := wait.Retryer{
		Delay:       defaults.RetryDelay,
		Attempts:    defaults.RetryAttempts,
		FieldLogger: r.log.WithField("path", path),
	}
	return retryer.Do(ctx, func() error {
		req, err := http.NewRequest(method, r.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return wait.Abort(trace.Wrap(err))
		}
		req = req.WithContext(ctx)
		req.Header.Set("Authorization", r.cfg.Token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := r.cfg.Client.Do(req)
		if err != nil {
			return trace.ConnectionProblem(err, "agent request %v %v failed", method, path)
		}
		defer resp.Body.Close()

		data, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return trace.Wrap(err)
		}
		switch {
		case resp.StatusCode >= http.StatusInternalServerError:
			return trace.ConnectionProblem(nil, "agent returned %v: %s", resp.Status, data)
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return wait.Abort(trace.AccessDenied("agent rejected the development token: %s", data))
		case resp.StatusCode >= http.StatusBadRequest:
			return wait.Abort(trace.BadParameter("agent returned %v: %s", resp.Status, data))
		}
		if out == nil || len(data) == 0 {
			return nil
		}
		if err := json.Unmarshal(data, out); err != nil {
			return wait.Abort(trace.BadParameter("invalid agent response: %v", err))
		}
		return nil
	})
}

type sessionRequest struct {
	UUID        string `json:"uuid"`
	ProjectName string `json:"projectName"`
	JobName     string `json:"jobName"`
	SDKVersion  string `json:"sdkVersion"`
	Language    string `json:"language"`
}

type sessionResponse struct {
	SessionID    string `json:"sessionId"`
	AgentVersion string `json:"version"`
}

type stepRequest struct {
	GUID        string `json:"guid"`
	Description string `json:"description"`
	Message     string `json:"message"`
	Passed      bool   `json:"passed"`
	Screenshot  string `json:"screenshot,omitempty"`
}

type settingsRequest struct {
	CommandReports bool `json:"commandReports"`
}

// New returns the reporter for cfg: a logging reporter in front of an agent
// session, or in front of a discarding reporter when reports are disabled
func New(ctx context.Context, cfg AgentConfig) (Reporter, error) {
	log := cfg.FieldLogger
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.Disabled {
		log.Info("Reports are disabled.")
		return NewLogReporter(log, Discard{}), nil
	}
	agent, err := NewAgentReporter(ctx, cfg)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return NewLogReporter(log, agent), nil
}
