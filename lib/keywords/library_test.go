package keywords

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testproject-io/robotkeywords/driver/webdriver"
	"github.com/testproject-io/robotkeywords/lib/report"
	"github.com/testproject-io/robotkeywords/lib/version"

	"github.com/google/go-cmp/cmp"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func TestDisplayName(t *testing.T) {
	require.Equal(t, "Select From List By Value", DisplayName("select_from_list_by_value"))
	require.Equal(t, "Get Webelement", DisplayName("get_webelement"))
	require.Equal(t, "Go To", DisplayName("GO_TO"))
}

func TestReportsReturnedValue(t *testing.T) {
	wd := newFakeDriver().on(selenium.ByID, "greeting", &fakeElement{text: "hello"})
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, wd, reporter)

	text, err := l.GetText(context.Background(), "id:greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", text)

	want := []report.Step{{
		Description: "Get Text: id:greeting",
		Message:     "Returned value: hello",
		Passed:      true,
		Screenshot:  true,
	}}
	if diff := cmp.Diff(want, reporter.steps); diff != "" {
		t.Errorf("unexpected steps (-want +got):\n%s", diff)
	}
}

func TestReportsMessageWithoutValue(t *testing.T) {
	elem := &fakeElement{}
	wd := newFakeDriver().on(selenium.ByID, "go", elem)
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, wd, reporter)

	require.NoError(t, l.ClickElement(context.Background(), "id:go", ""))
	require.Equal(t, 1, elem.clicks)
	require.Len(t, reporter.steps, 1)
	require.Equal(t, "Click Element: id:go", reporter.steps[0].Description)
	require.Equal(t, `Clicked "id:go"`, reporter.steps[0].Message)
	require.True(t, reporter.steps[0].Passed)
}

func TestFailureIsReportedAndReturned(t *testing.T) {
	wd := newFakeDriver()
	reporter := &fakeReporter{}
	l, dir := newLibrary(t, wd, reporter)

	_, err := l.GetText(context.Background(), "id:missing")
	require.True(t, trace.IsNotFound(err), "expected not found, got %v", err)

	require.Len(t, reporter.steps, 1, "run on failure keyword is not reported")
	step := reporter.steps[0]
	require.False(t, step.Passed)
	require.Equal(t, "Get Text: id:missing", step.Description)
	require.True(t, strings.HasPrefix(step.Message, "Failure reason:\n'"), step.Message)
	require.Contains(t, step.Message, `"id:missing" not found`)

	require.Equal(t, 1, wd.screenshots)
	require.FileExists(t, filepath.Join(dir, "TestProject-2020_01_02_03_04_05.png"))
}

func TestRunOnFailureDisabled(t *testing.T) {
	wd := newFakeDriver()
	l, _ := newLibrary(t, wd, &fakeReporter{})

	_, err := l.RegisterKeywordToRunOnFailure(context.Background(), "NONE")
	require.NoError(t, err)
	_, err = l.GetText(context.Background(), "id:missing")
	require.Error(t, err)
	require.Equal(t, 0, wd.screenshots)
}

func TestNoReporterBeforeInit(t *testing.T) {
	wd := newFakeDriver().on(selenium.ByID, "greeting", &fakeElement{text: "hello"})
	l, _ := newLibrary(t, wd, nil)

	text, err := l.GetText(context.Background(), "id:greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", text)

	err = l.CreateStep(context.Background(), "custom", "message", true, false)
	require.True(t, trace.IsNotFound(err))
}

func TestWaitMessages(t *testing.T) {
	wd := newFakeDriver()
	wd.url = "http://localhost/home"
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, wd, reporter)
	ctx := context.Background()

	require.NoError(t, l.WaitUntilLocationIs(ctx, "http://localhost/home", 2*time.Second, ""))
	require.NoError(t, l.WaitUntilLocationContains(ctx, "home", 0, ""))
	require.Equal(t, "Location was 'http://localhost/home' (timeout: 2 seconds)", reporter.steps[0].Message)
	require.Equal(t, "Location contained 'home'", reporter.steps[1].Message)
}

func TestInputPasswordIsNotReported(t *testing.T) {
	elem := &fakeElement{}
	wd := newFakeDriver().on(selenium.ByID, "password", elem)
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, wd, reporter)

	require.NoError(t, l.InputPassword(context.Background(), "id:password", "s3cret", true))
	require.Equal(t, []string{"s3cret"}, elem.keys)
	require.NotContains(t, reporter.steps[0].Message, "s3cret")
	require.NotContains(t, reporter.steps[0].Description, "s3cret")
}

func TestEndTest(t *testing.T) {
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, newFakeDriver(), reporter)

	l.EndTest(context.Background(), "Login", false, "boom")
	require.Equal(t, []report.TestResult{{Name: "Login", Passed: false, Message: "boom"}}, reporter.tests)
}

func TestDeprecatedKeywords(t *testing.T) {
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, newFakeDriver(), reporter)
	ctx := context.Background()

	require.NoError(t, l.OpenBrowser(ctx, "http://localhost"))
	require.NoError(t, l.CreateWebdriver(ctx, "Chrome", "main"))
	want := []report.Step{
		{Description: "Open Browser", Message: "This step is deprecated using TestProject library", Passed: true},
		{Description: "Create Webdriver", Message: "This step is deprecated using TestProject library", Passed: true},
	}
	require.Equal(t, want, reporter.steps)
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "hello", formatValue("hello"))
	require.Equal(t, "5s", formatValue(5*time.Second))
	require.Equal(t, "42", formatValue(42))
	require.Equal(t, "<WebElement>", formatValue(selenium.WebElement(&fakeElement{})))
	require.Equal(t, `[]string{"a", "b"}`, formatValue([]string{"a", "b"}))

	require.True(t, isEmpty(nil))
	require.True(t, isEmpty(""))
	require.True(t, isEmpty(0))
	require.True(t, isEmpty([]string{}))
	require.True(t, isEmpty(false))
	require.False(t, isEmpty("x"))
	require.False(t, isEmpty([]int{0}))
}

func useVersion(t *testing.T, v string) {
	prev := version.Version
	version.Version = v
	t.Cleanup(func() { version.Version = prev })
}

func newInitLibrary(t *testing.T, session *webdriver.Session, reporter *fakeReporter) *Library {
	useVersion(t, "1.2.3")
	l, _ := newLibrary(t, nil, nil)
	l.sessions = func(ctx context.Context, config webdriver.Config) (*webdriver.Session, error) {
		return session, nil
	}
	l.reporters = func(ctx context.Context, config report.AgentConfig) (report.Reporter, error) {
		if config.SDKVersion != "1.2.3" {
			return nil, trace.BadParameter("unexpected version %q", config.SDKVersion)
		}
		return reporter, nil
	}
	return l
}

func TestInitDriver(t *testing.T) {
	wd := newFakeDriver()
	reporter := &fakeReporter{}
	l := newInitLibrary(t, &webdriver.Session{WebDriver: wd, Browser: webdriver.Chrome}, reporter)
	ctx := context.Background()

	err := l.InitDriver(ctx, InitOptions{
		Driver: webdriver.Config{Browser: "chrome"},
		Report: report.Config{Disabled: true},
		URL:    "http://localhost/login",
	})
	require.NoError(t, err)

	require.Equal(t, "http://localhost/login", wd.url)
	require.Equal(t, 5*time.Second, wd.scriptTimeout)
	require.Equal(t, []bool{true}, reporter.commandReports)
	require.Equal(t, []string{"run_cli", "main"}, reporter.excluded)
	require.Equal(t, map[string]int{"testproject_driver": 1}, l.Browser().GetBrowserAliases())
	want := []report.Step{
		{Description: "Time out was set to 5000 millisecond", Message: "Set timeout", Passed: true},
		{Description: "Successfully navigated to http://localhost/login", Message: "Navigated to http://localhost/login", Passed: true},
	}
	require.Equal(t, want, reporter.steps)

	require.NoError(t, l.Close(ctx))
	require.True(t, wd.quit)
	require.True(t, reporter.closed)
}

func TestInitDriverFailsToOpenURL(t *testing.T) {
	wd := newFakeDriver()
	wd.getErr = errors.New("connection refused")
	reporter := &fakeReporter{}
	l := newInitLibrary(t, &webdriver.Session{WebDriver: wd, Browser: webdriver.Firefox}, reporter)

	err := l.InitDriver(context.Background(), InitOptions{
		Report: report.Config{Disabled: true},
		URL:    "http://localhost:1",
	})
	require.Error(t, err)
	require.Len(t, reporter.steps, 2)
	require.Equal(t, "Failed to open http://localhost:1", reporter.steps[1].Message)
	require.False(t, reporter.steps[1].Passed)
	require.False(t, l.Browser().HasBrowser())
}

func TestCloseQuitsUnregisteredBrowser(t *testing.T) {
	wd := newFakeDriver()
	wd.getErr = errors.New("connection refused")
	reporter := &fakeReporter{}
	l := newInitLibrary(t, &webdriver.Session{WebDriver: wd, Browser: webdriver.Chrome}, reporter)
	ctx := context.Background()

	require.Error(t, l.InitDriver(ctx, InitOptions{
		Report: report.Config{Disabled: true},
		URL:    "http://localhost:1",
	}))
	require.False(t, wd.quit)

	require.NoError(t, l.Close(ctx))
	require.True(t, wd.quit, "browser of a failed init must be quit on close")
	require.True(t, reporter.closed)
}

func TestInitDriverReplacesSession(t *testing.T) {
	failed := newFakeDriver()
	failed.getErr = errors.New("connection refused")
	first, second := newFakeDriver(), newFakeDriver()
	queue := []*fakeDriver{failed, first, second}
	reporter := &fakeReporter{}
	l := newInitLibrary(t, nil, reporter)
	l.sessions = func(ctx context.Context, config webdriver.Config) (*webdriver.Session, error) {
		wd := queue[0]
		queue = queue[1:]
		return &webdriver.Session{WebDriver: wd, Browser: webdriver.Chrome}, nil
	}
	ctx := context.Background()
	opts := InitOptions{Report: report.Config{Disabled: true}, URL: "http://localhost/login"}

	require.Error(t, l.InitDriver(ctx, opts))
	require.NoError(t, l.InitDriver(ctx, opts))
	require.True(t, failed.quit, "replaced session without a registered browser is closed")

	require.NoError(t, l.InitDriver(ctx, opts))
	require.False(t, first.quit, "registered browser stays open until closed")
	require.Len(t, l.Browser().GetBrowserIDs(), 2)

	require.NoError(t, l.Close(ctx))
	require.True(t, first.quit)
	require.True(t, second.quit)
}

func TestInitGenericDriver(t *testing.T) {
	reporter := &fakeReporter{}
	l := newInitLibrary(t, &webdriver.Session{Browser: webdriver.Generic}, reporter)
	ctx := context.Background()

	require.NoError(t, l.InitDriver(ctx, InitOptions{
		Driver: webdriver.Config{Browser: "generic"},
		Report: report.Config{Disabled: true},
	}))
	require.True(t, l.IsGeneric())
	require.Empty(t, reporter.commandReports)
	require.NoError(t, l.CreateStep(ctx, "Custom", "done", true, true))

	want := []report.Step{
		{Description: "New session created", Message: "Generic Driver", Passed: true},
		{Description: "Custom", Message: "done", Passed: true, Screenshot: false},
	}
	require.Equal(t, want, reporter.steps)
}

func TestInitDriverRequiresVersion(t *testing.T) {
	t.Setenv("TP_ROBOT_LIB_VERSION", "")
	reporter := &fakeReporter{}
	l := newInitLibrary(t, &webdriver.Session{Browser: webdriver.Generic}, reporter)
	version.Version = ""

	err := l.InitDriver(context.Background(), InitOptions{Report: report.Config{Disabled: true}})
	require.True(t, trace.IsNotFound(err), "expected not found, got %v", err)
	require.Empty(t, reporter.steps)
}
