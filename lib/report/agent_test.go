package report

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

type fakeAgent struct {
	sync.Mutex
	version  string
	failures int
	steps    []stepRequest
	tests    []TestResult
	settings []settingsRequest
	closed   bool
	tokens   []string
}

func (a *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Lock()
	defer a.Unlock()
	a.tokens = append(a.tokens, r.Header.Get("Authorization"))
	if r.Header.Get("Authorization") != "secret" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if a.failures > 0 {
		a.failures--
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	data, _ := ioutil.ReadAll(r.Body)
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/development/session":
		json.NewEncoder(w).Encode(sessionResponse{SessionID: "s1", AgentVersion: a.version})
	case r.Method == http.MethodPost && r.URL.Path == "/api/development/session/s1/report/step":
		var step stepRequest
		json.Unmarshal(data, &step)
		a.steps = append(a.steps, step)
	case r.Method == http.MethodPost && r.URL.Path == "/api/development/session/s1/report/test":
		var result TestResult
		json.Unmarshal(data, &result)
		a.tests = append(a.tests, result)
	case r.Method == http.MethodPut && r.URL.Path == "/api/development/session/s1/settings":
		var settings settingsRequest
		json.Unmarshal(data, &settings)
		a.settings = append(a.settings, settings)
	case r.Method == http.MethodDelete && r.URL.Path == "/api/development/session/s1":
		a.closed = true
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newAgentReporter(t *testing.T, agent *fakeAgent, token string) (*AgentReporter, error) {
	server := httptest.NewServer(agent)
	t.Cleanup(server.Close)
	cfg := AgentConfig{
		Config: Config{
			AgentURL:    server.URL + "/",
			Token:       token,
			ProjectName: "project",
			JobName:     "job",
		},
		SDKVersion: "1.0.0",
		Screenshot: func(context.Context) ([]byte, error) {
			return []byte("png"), nil
		},
		FieldLogger: xlog.NewTestLogger(t),
	}
	return NewAgentReporter(context.Background(), cfg)
}

func TestAgentReportsSteps(t *testing.T) {
	agent := &fakeAgent{version: "0.65.2"}
	r, err := newAgentReporter(t, agent, "secret")
	require.NoError(t, err)
	require.Equal(t, "s1", r.SessionID())

	ctx := context.Background()
	require.NoError(t, r.Step(ctx, Step{Description: "Click Element: id:go", Message: "Clicked", Passed: true, Screenshot: true}))
	require.NoError(t, r.Step(ctx, Step{Description: "Get Text: id:x", Message: "Failure reason:\n'boom'"}))
	require.NoError(t, r.DisableCommandReports(ctx, true))
	require.NoError(t, r.Close(ctx))

	agent.Lock()
	defer agent.Unlock()
	require.Len(t, agent.steps, 2)
	require.Equal(t, "Click Element: id:go", agent.steps[0].Description)
	require.True(t, agent.steps[0].Passed)
	require.Equal(t, base64.StdEncoding.EncodeToString([]byte("png")), agent.steps[0].Screenshot)
	require.False(t, agent.steps[1].Passed)
	require.Empty(t, agent.steps[1].Screenshot)
	require.NotEqual(t, agent.steps[0].GUID, agent.steps[1].GUID)
	require.Equal(t, []settingsRequest{{CommandReports: false}}, agent.settings)
	require.True(t, agent.closed)
}

func TestAgentSkipsExcludedTests(t *testing.T) {
	agent := &fakeAgent{}
	r, err := newAgentReporter(t, agent, "secret")
	require.NoError(t, err)

	ctx := context.Background()
	r.ExcludeTestNames("run_cli", "main")
	require.NoError(t, r.Test(ctx, TestResult{Name: "main", Passed: true}))
	require.NoError(t, r.Test(ctx, TestResult{Name: "Login", Passed: false}))

	agent.Lock()
	defer agent.Unlock()
	require.Equal(t, []TestResult{{Name: "Login", Passed: false}}, agent.tests)
}

func TestAgentRetriesServerErrors(t *testing.T) {
	agent := &fakeAgent{failures: 2}
	r, err := newAgentReporter(t, agent, "secret")
	require.NoError(t, err)
	require.Equal(t, "s1", r.SessionID())
}

func TestAgentRejectsToken(t *testing.T) {
	agent := &fakeAgent{}
	_, err := newAgentReporter(t, agent, "wrong")
	require.True(t, trace.IsAccessDenied(err), "expected access denied, got %v", err)

	agent.Lock()
	defer agent.Unlock()
	require.Len(t, agent.tokens, 1, "client errors are not retried")
}

func TestAgentRejectsOldVersion(t *testing.T) {
	agent := &fakeAgent{version: "0.50.0"}
	_, err := newAgentReporter(t, agent, "secret")
	require.True(t, trace.IsCompareFailed(err), "expected compare failed, got %v", err)
}

func TestDisabledReportsNeedNoToken(t *testing.T) {
	cfg := Config{Disabled: true}
	require.NoError(t, cfg.CheckAndSetDefaults())

	cfg = Config{}
	err := cfg.CheckAndSetDefaults()
	require.True(t, trace.IsBadParameter(err))
	require.True(t, strings.Contains(err.Error(), "TP_DEV_TOKEN"))
}

func TestLogReporterExcludesTests(t *testing.T) {
	next := &recorder{}
	r := NewLogReporter(xlog.NewTestLogger(t), next)
	ctx := context.Background()
	r.ExcludeTestNames("main")
	require.NoError(t, r.Test(ctx, TestResult{Name: "main", Passed: true}))
	require.NoError(t, r.Test(ctx, TestResult{Name: "Checkout", Passed: true}))
	require.NoError(t, r.Step(ctx, Step{Description: "Go To: /", Passed: true}))
	require.Equal(t, []TestResult{{Name: "Checkout", Passed: true}}, next.tests)
	require.Len(t, next.steps, 1)
}

type recorder struct {
	Discard
	steps []Step
	tests []TestResult
}

func (r *recorder) Step(_ context.Context, step Step) error {
	r.steps = append(r.steps, step)
	return nil
}

func (r *recorder) Test(_ context.Context, result TestResult) error {
	r.tests = append(r.tests, result)
	return nil
}
