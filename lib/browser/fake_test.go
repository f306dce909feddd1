package browser

import (
	"fmt"
	"testing"
	"time"

	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

// fakeDriver answers element lookups from a fixed table.
// Methods not overridden panic through the nil embedded interface.
type fakeDriver struct {
	selenium.WebDriver

	elements  map[string][]selenium.WebElement
	queries   []string
	scripts   []string
	script    func(script string, args []interface{}) (interface{}, error)
	url       string
	title     string
	source    string
	alert     *string
	accepted  bool
	dismissed bool
	quit      bool
	frames    []interface{}
	image     []byte
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{elements: map[string][]selenium.WebElement{}}
}

func (d *fakeDriver) on(by, value string, elems ...selenium.WebElement) *fakeDriver {
	d.elements[by+"|"+value] = elems
	return d
}

func (d *fakeDriver) FindElements(by, value string) ([]selenium.WebElement, error) {
	d.queries = append(d.queries, by+"|"+value)
	return d.elements[by+"|"+value], nil
}

func (d *fakeDriver) FindElement(by, value string) (selenium.WebElement, error) {
	elems, _ := d.FindElements(by, value)
	if len(elems) == 0 {
		return nil, trace.NotFound("no such element")
	}
	return elems[0], nil
}

func (d *fakeDriver) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	d.scripts = append(d.scripts, script)
	if d.script != nil {
		return d.script(script, args)
	}
	return nil, nil
}

func (d *fakeDriver) CurrentURL() (string, error)                { return d.url, nil }
func (d *fakeDriver) Title() (string, error)                     { return d.title, nil }
func (d *fakeDriver) PageSource() (string, error)                { return d.source, nil }
func (d *fakeDriver) SessionID() string                          { return "session-1" }
func (d *fakeDriver) Get(url string) error                       { d.url = url; return nil }
func (d *fakeDriver) Quit() error                                { d.quit = true; return nil }
func (d *fakeDriver) SetImplicitWaitTimeout(time.Duration) error { return nil }
func (d *fakeDriver) Screenshot() ([]byte, error)                { return d.image, nil }

func (d *fakeDriver) SwitchFrame(frame interface{}) error {
	d.frames = append(d.frames, frame)
	return nil
}

func (d *fakeDriver) AlertText() (string, error) {
	if d.alert == nil {
		return "", trace.NotFound("no such alert")
	}
	return *d.alert, nil
}

func (d *fakeDriver) AcceptAlert() error {
	d.accepted = true
	d.alert = nil
	return nil
}

func (d *fakeDriver) DismissAlert() error {
	d.dismissed = true
	d.alert = nil
	return nil
}

// fakeElement is a static element
type fakeElement struct {
	selenium.WebElement

	tag       string
	text      string
	attrs     map[string]string
	selected  bool
	hidden    bool
	disabled  bool
	clicks    int
	keys      []string
	children  map[string][]selenium.WebElement
	submitted bool
}

func newElement(tag string, attrs ...string) *fakeElement {
	elem := &fakeElement{tag: tag, attrs: map[string]string{}, children: map[string][]selenium.WebElement{}}
	for i := 0; i+1 < len(attrs); i += 2 {
		elem.attrs[attrs[i]] = attrs[i+1]
	}
	return elem
}

func (e *fakeElement) TagName() (string, error) { return e.tag, nil }
func (e *fakeElement) Text() (string, error)    { return e.text, nil }

func (e *fakeElement) GetAttribute(name string) (string, error) {
	value, ok := e.attrs[name]
	if !ok {
		return "", fmt.Errorf("nil return value")
	}
	return value, nil
}

func (e *fakeElement) IsSelected() (bool, error)  { return e.selected, nil }
func (e *fakeElement) IsDisplayed() (bool, error) { return !e.hidden, nil }
func (e *fakeElement) IsEnabled() (bool, error)   { return !e.disabled, nil }
func (e *fakeElement) Clear() error               { e.keys = nil; return nil }
func (e *fakeElement) Submit() error              { e.submitted = true; return nil }

func (e *fakeElement) Click() error {
	e.clicks++
	if e.tag == "option" || e.attrs["type"] == "checkbox" || e.attrs["type"] == "radio" {
		e.selected = !e.selected
	}
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.keys = append(e.keys, keys)
	return nil
}

func (e *fakeElement) FindElements(by, value string) ([]selenium.WebElement, error) {
	return e.children[by+"|"+value], nil
}

func newOption(label, value string, selected bool) *fakeElement {
	opt := newElement("option", "value", value)
	opt.text = label
	opt.selected = selected
	return opt
}

func newLibrary(t *testing.T, wd selenium.WebDriver) *Library {
	lib, err := New(Config{
		Timeout:       300 * time.Millisecond,
		ScreenshotDir: t.TempDir(),
		FieldLogger:   xlog.NewTestLogger(t),
	})
	require.NoError(t, err)
	if wd != nil {
		_, err = lib.RegisterDriver(wd, "main")
		require.NoError(t, err)
	}
	return lib
}
