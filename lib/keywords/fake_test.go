package keywords

import (
	"context"
	"testing"
	"time"

	"github.com/testproject-io/robotkeywords/lib/browser"
	"github.com/testproject-io/robotkeywords/lib/report"
	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

type fakeReporter struct {
	steps          []report.Step
	tests          []report.TestResult
	excluded       []string
	commandReports []bool
	closed         bool
}

func (r *fakeReporter) Step(_ context.Context, step report.Step) error {
	r.steps = append(r.steps, step)
	return nil
}

func (r *fakeReporter) Test(_ context.Context, result report.TestResult) error {
	r.tests = append(r.tests, result)
	return nil
}

func (r *fakeReporter) DisableCommandReports(_ context.Context, disabled bool) error {
	r.commandReports = append(r.commandReports, disabled)
	return nil
}

func (r *fakeReporter) ExcludeTestNames(names ...string) {
	r.excluded = append(r.excluded, names...)
}

func (r *fakeReporter) Close(context.Context) error {
	r.closed = true
	return nil
}

// fakeDriver answers element lookups from a fixed table.
// Methods not overridden panic through the nil embedded interface.
type fakeDriver struct {
	selenium.WebDriver

	elements      map[string][]selenium.WebElement
	url           string
	title         string
	getErr        error
	scriptTimeout time.Duration
	screenshots   int
	quit          bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{elements: map[string][]selenium.WebElement{}}
}

func (d *fakeDriver) on(by, value string, elems ...selenium.WebElement) *fakeDriver {
	d.elements[by+"|"+value] = elems
	return d
}

func (d *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	return d.elements[by+"|"+value], nil
}

func (d *fakeDriver) Get(url string) error {
	if d.getErr != nil {
		return d.getErr
	}
	d.url = url
	return nil
}

func (d *fakeDriver) Screenshot() ([]byte, error) {
	d.screenshots++
	return []byte("png"), nil
}

func (d *fakeDriver) SetAsyncScriptTimeout(timeout time.Duration) error {
	d.scriptTimeout = timeout
	return nil
}

func (d *fakeDriver) CurrentURL() (string, error) { return d.url, nil }
func (d *fakeDriver) Title() (string, error)      { return d.title, nil }
func (d *fakeDriver) PageSource() (string, error) { return "<html></html>", nil }
func (d *fakeDriver) Quit() error                 { d.quit = true; return nil }

type fakeElement struct {
	selenium.WebElement

	text   string
	clicks int
	keys   []string
}

func (e *fakeElement) Text() (string, error)    { return e.text, nil }
func (e *fakeElement) TagName() (string, error) { return "input", nil }
func (e *fakeElement) Clear() error             { e.keys = nil; return nil }

func (e *fakeElement) Click() error {
	e.clicks++
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.keys = append(e.keys, keys)
	return nil
}

var testClock = func() time.Time {
	return time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
}

// newLibrary returns a library reporting to reporter with wd as the current browser
func newLibrary(t *testing.T, wd selenium.WebDriver, reporter report.Reporter) (*Library, string) {
	dir := t.TempDir()
	log := xlog.NewTestLogger(t)
	b, err := browser.New(browser.Config{
		Timeout:       300 * time.Millisecond,
		ScreenshotDir: dir,
		FieldLogger:   log,
	})
	require.NoError(t, err)
	if wd != nil {
		_, err = b.RegisterDriver(wd, "main")
		require.NoError(t, err)
	}
	l, err := New(Config{
		Browser:     b,
		Reporter:    reporter,
		Clock:       testClock,
		FieldLogger: log,
		Reporters: func(context.Context, report.AgentConfig) (report.Reporter, error) {
			return nil, trace.BadParameter("unexpected reporting session")
		},
	})
	require.NoError(t, err)
	return l, dir
}
