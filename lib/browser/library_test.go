package browser

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func TestParseLocator(t *testing.T) {
	lib := newLibrary(t, nil)
	require.NoError(t, lib.AddLocationStrategy("ng", "return document.querySelector(arguments[0]);", false))

	var testCases = []struct {
		in       string
		expected locator
	}{
		{in: "id:go", expected: locator{strategy: "id", criteria: "go"}},
		{in: "id=go", expected: locator{strategy: "id", criteria: "go"}},
		{in: "css:a[href='x:y']", expected: locator{strategy: "css", criteria: "a[href='x:y']"}},
		{in: "partial link:Sign", expected: locator{strategy: "partial link", criteria: "Sign"}},
		{in: "//div[@id='x']", expected: locator{strategy: "xpath", criteria: "//div[@id='x']"}},
		{in: "(//div)[2]", expected: locator{strategy: "xpath", criteria: "(//div)[2]"}},
		{in: "XPATH=//a", expected: locator{strategy: "xpath", criteria: "//a"}},
		{in: "ng:#main", expected: locator{strategy: "ng", criteria: "#main"}},
		{in: "unknown:value", expected: locator{strategy: "default", criteria: "unknown:value"}},
		{in: "submit", expected: locator{strategy: "default", criteria: "submit"}},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, lib.parseLocator(tc.in), tc.in)
	}
}

func TestXPathLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", xpathLiteral("plain"))
	assert.Equal(t, `"it's"`, xpathLiteral("it's"))
	assert.Equal(t, `concat('say "it', "'", 's"')`, xpathLiteral(`say "it's"`))
}

func TestDefaultStrategyMatchesTagAttributes(t *testing.T) {
	assert.Equal(t, "//a[@id='home' or @name='home' or @href='home' or normalize-space(descendant-or-self::text())='home']",
		defaultXPath(linkTag, "home"))
	assert.Equal(t, "//*[@id='x' or @name='x']", defaultXPath(anyTag, "x"))
}

func TestFindFiltersByTag(t *testing.T) {
	checkbox := newElement("input", "type", "checkbox")
	text := newElement("input")
	wd := newFakeDriver().on(selenium.ByName, "agree", text, checkbox)
	lib := newLibrary(t, wd)
	ctx := context.Background()

	elem, err := lib.element(ctx, "name:agree", checkboxTag)
	require.NoError(t, err)
	require.Equal(t, checkbox, elem)

	elem, err = lib.element(ctx, "name:agree", textFieldTag)
	require.NoError(t, err)
	require.Equal(t, text, elem, "inputs without type are text fields")

	_, err = lib.element(ctx, "name:agree", listTag)
	require.True(t, trace.IsNotFound(err))
	require.Contains(t, err.Error(), "list with locator")
}

func TestNotFoundDescribesElementKind(t *testing.T) {
	var testCases = []struct {
		spec     tagSpec
		expected string
	}{
		{spec: anyTag, expected: `element with locator "id:x" not found`},
		{spec: checkboxTag, expected: `checkbox with locator "id:x" not found`},
		{spec: radioTag, expected: `radio button with locator "id:x" not found`},
		{spec: imageInputTag, expected: `image with locator "id:x" not found`},
		{spec: inputButton, expected: `button with locator "id:x" not found`},
		{spec: fileUploadTag, expected: `file upload with locator "id:x" not found`},
		{spec: tagSpec{tag: "table"}, expected: `table with locator "id:x" not found`},
	}
	for _, tc := range testCases {
		err := notFound("id:x", tc.spec)
		require.True(t, trace.IsNotFound(err))
		require.Equal(t, tc.expected, trace.UserMessage(err))
	}
	require.Equal(t, "element", describeElement(anyTag))
	require.Equal(t, "text field", describeElement(textFieldTag))
}

func TestNoBrowser(t *testing.T) {
	lib := newLibrary(t, nil)
	_, err := lib.GetTitle(context.Background())
	require.True(t, trace.IsNotFound(err))
	require.False(t, lib.HasBrowser())
}

func TestBrowserCache(t *testing.T) {
	first, second := newFakeDriver(), newFakeDriver()
	first.title, second.title = "first", "second"
	lib := newLibrary(t, first)
	ctx := context.Background()

	index, err := lib.RegisterDriver(second, "other")
	require.NoError(t, err)
	require.Equal(t, 2, index)
	require.Equal(t, []int{1, 2}, lib.GetBrowserIDs())
	require.Equal(t, map[string]int{"main": 1, "other": 2}, lib.GetBrowserAliases())

	require.NoError(t, lib.SwitchBrowser("main"))
	title, err := lib.GetTitle(ctx)
	require.NoError(t, err)
	require.Equal(t, "first", title)

	require.NoError(t, lib.CloseBrowser(ctx))
	require.True(t, first.quit)
	require.Equal(t, []int{2}, lib.GetBrowserIDs())
	require.True(t, trace.IsNotFound(lib.SwitchBrowser("1")))

	require.NoError(t, lib.SwitchBrowser("2"))
	require.NoError(t, lib.CloseAllBrowsers(ctx))
	require.True(t, second.quit)
	require.Empty(t, lib.GetBrowserIDs())
}

func TestSelectFromList(t *testing.T) {
	list := newElement("select", "multiple", "true")
	red, green, blue := newOption("Red", "r", true), newOption("Green", "g", false), newOption("Blue", "b", false)
	list.children[selenium.ByTagName+"|option"] = []selenium.WebElement{red, green, blue}
	lib := newLibrary(t, newFakeDriver().on(selenium.ByID, "colors", list))
	ctx := context.Background()

	require.NoError(t, lib.SelectFromListByLabel(ctx, "id:colors", "Green"))
	require.NoError(t, lib.SelectFromListByIndex(ctx, "id:colors", "2"))
	require.NoError(t, lib.ListSelectionShouldBe(ctx, "id:colors", "Red", "g", "Blue"))

	require.NoError(t, lib.UnselectFromListByValue(ctx, "id:colors", "r"))
	labels, err := lib.GetSelectedListLabels(ctx, "id:colors")
	require.NoError(t, err)
	require.Equal(t, []string{"Green", "Blue"}, labels)

	err = lib.SelectFromListByValue(ctx, "id:colors", "purple")
	require.True(t, trace.IsNotFound(err))

	require.NoError(t, lib.UnselectAllFromList(ctx, "id:colors"))
	require.NoError(t, lib.ListShouldHaveNoSelections(ctx, "id:colors"))

	items, err := lib.GetListItems(ctx, "id:colors", true)
	require.NoError(t, err)
	require.Equal(t, []string{"r", "g", "b"}, items)

	err = lib.ListSelectionShouldBe(ctx, "id:colors", "Red")
	require.True(t, trace.IsCompareFailed(err))
}

func TestUnselectRequiresMultipleList(t *testing.T) {
	list := newElement("select")
	list.children[selenium.ByTagName+"|option"] = []selenium.WebElement{newOption("One", "1", true)}
	lib := newLibrary(t, newFakeDriver().on(selenium.ByID, "single", list))

	err := lib.UnselectFromListByLabel(context.Background(), "id:single", "One")
	require.True(t, trace.IsBadParameter(err))
}

func TestAssertionMessages(t *testing.T) {
	elem := newElement("div")
	elem.text = "Hello World"
	lib := newLibrary(t, newFakeDriver().on(selenium.ByID, "greeting", elem))
	ctx := context.Background()

	require.NoError(t, lib.ElementShouldContain(ctx, "id:greeting", "hello", "", true))

	err := lib.ElementShouldContain(ctx, "id:greeting", "bye", "", false)
	require.True(t, trace.IsCompareFailed(err))
	require.Contains(t, err.Error(), "should have contained text 'bye' but its text was 'Hello World'")

	err = lib.ElementTextShouldBe(ctx, "id:greeting", "Hello", "custom 100% message", false)
	require.True(t, trace.IsCompareFailed(err))
	require.Contains(t, err.Error(), "custom 100% message")

	err = lib.LocatorShouldMatchXTimes(ctx, "id:greeting", 2, "")
	require.Contains(t, err.Error(), "should have matched 2 times but it matched 1 time")
}

func TestCheckboxAndRadio(t *testing.T) {
	checkbox := newElement("input", "type", "checkbox")
	radio := newElement("input", "type", "radio", "value", "card")
	wd := newFakeDriver().
		on(selenium.ByID, "agree", checkbox).
		on(selenium.ByXPATH, radioXPath("payment", "card"), radio).
		on(selenium.ByXPATH, radioGroupXPath("payment"), radio)
	lib := newLibrary(t, wd)
	ctx := context.Background()

	require.NoError(t, lib.SelectCheckbox(ctx, "id:agree"))
	require.NoError(t, lib.SelectCheckbox(ctx, "id:agree"))
	require.Equal(t, 1, checkbox.clicks)
	require.NoError(t, lib.CheckboxShouldBeSelected(ctx, "id:agree"))

	require.NoError(t, lib.RadioButtonShouldNotBeSelected(ctx, "payment"))
	require.NoError(t, lib.SelectRadioButton(ctx, "payment", "card"))
	require.NoError(t, lib.RadioButtonShouldBeSetTo(ctx, "payment", "card"))
	err := lib.RadioButtonShouldBeSetTo(ctx, "payment", "cash")
	require.True(t, trace.IsCompareFailed(err))
}

func TestInputText(t *testing.T) {
	field := newElement("input", "type", "text")
	lib := newLibrary(t, newFakeDriver().on(selenium.ByID, "user", field))
	ctx := context.Background()

	require.NoError(t, lib.InputText(ctx, "id:user", "old", true))
	require.NoError(t, lib.InputText(ctx, "id:user", "bob", true))
	require.Equal(t, []string{"bob"}, field.keys)
	require.NoError(t, lib.InputPassword(ctx, "id:user", "secret", false))
	require.Equal(t, []string{"bob", "secret"}, field.keys)
}

func TestWaitTimeoutMessage(t *testing.T) {
	wd := newFakeDriver()
	wd.url = "http://localhost/login"
	lib := newLibrary(t, wd)
	ctx := context.Background()

	require.NoError(t, lib.WaitUntilLocationContains(ctx, "login", 0, ""))

	err := lib.WaitUntilLocationIs(ctx, "http://localhost/home", 250*time.Millisecond, "")
	require.True(t, trace.IsLimitExceeded(err), "expected timeout, got %v", err)
	require.Contains(t, err.Error(), "Location did not become 'http://localhost/home' in 250ms.")

	err = lib.WaitUntilLocationIs(ctx, "http://localhost/home", 0, "gone after <TIMEOUT>")
	require.Contains(t, err.Error(), "gone after 300ms")
}

func TestWaitForConditionRequiresReturn(t *testing.T) {
	lib := newLibrary(t, newFakeDriver())
	err := lib.WaitForCondition(context.Background(), "document.readyState == 'complete'", 0, "")
	require.True(t, trace.IsBadParameter(err))
}

func TestWaitForCondition(t *testing.T) {
	wd := newFakeDriver()
	var calls int
	wd.script = func(string, []interface{}) (interface{}, error) {
		calls++
		return calls > 1, nil
	}
	lib := newLibrary(t, wd)
	require.NoError(t, lib.WaitForCondition(context.Background(), "return window.ready;", time.Second, ""))
	require.Equal(t, 2, calls)
}

func TestHandleAlert(t *testing.T) {
	wd := newFakeDriver()
	text := "Are you sure?"
	wd.alert = &text
	lib := newLibrary(t, wd)
	ctx := context.Background()

	message, err := lib.HandleAlert(ctx, "", 0)
	require.NoError(t, err)
	require.Equal(t, text, message)
	require.True(t, wd.accepted)

	require.NoError(t, lib.AlertShouldNotBePresent(ctx, "", 0))

	_, err = lib.HandleAlert(ctx, "IGNORE", 0)
	require.True(t, trace.IsBadParameter(err))

	err = lib.AlertShouldBePresent(ctx, "", "ACCEPT", 100*time.Millisecond)
	require.True(t, trace.IsLimitExceeded(err))
	require.Contains(t, err.Error(), "Alert not found in 100ms.")
}

func TestAlertShouldNotBePresent(t *testing.T) {
	wd := newFakeDriver()
	lib := newLibrary(t, wd)
	ctx := context.Background()

	require.NoError(t, lib.AlertShouldNotBePresent(ctx, "", 0))
	require.NoError(t, lib.AlertShouldNotBePresent(ctx, "", 50*time.Millisecond))

	text := "Leave page?"
	wd.alert = &text
	err := lib.AlertShouldNotBePresent(ctx, "DISMISS", 0)
	require.True(t, trace.IsCompareFailed(err), "got %v", err)
	require.Contains(t, err.Error(), "Alert with message 'Leave page?' present.")
	require.True(t, wd.dismissed)
	require.Nil(t, wd.alert)
}

func TestWaitCustomMessage(t *testing.T) {
	wd := newFakeDriver()
	lib := newLibrary(t, wd)
	start := time.Now()
	err := lib.WaitUntilPageContainsElement(context.Background(), "id:missing", 200*time.Millisecond, "custom error", NoLimit)
	require.True(t, trace.IsLimitExceeded(err), "got %v", err)
	require.Equal(t, "custom error", trace.UserMessage(err))
	require.True(t, time.Since(start) >= 200*time.Millisecond)
}

func TestLocationStrategies(t *testing.T) {
	lib := newLibrary(t, nil)
	require.NoError(t, lib.AddLocationStrategy("temp", "document.getElementById(arguments[0])", false))
	require.NoError(t, lib.AddLocationStrategy("kept", "return []", true))
	require.True(t, trace.IsAlreadyExists(lib.AddLocationStrategy("css", "return []", true)))
	require.Equal(t, "return document.getElementById(arguments[0])", lib.strategies["temp"].script)

	lib.EndTest()
	require.Nil(t, lib.strategies["temp"])
	require.NotNil(t, lib.strategies["kept"])

	require.NoError(t, lib.RemoveLocationStrategy("kept"))
	require.True(t, trace.IsNotFound(lib.RemoveLocationStrategy("kept")))
}

func TestParseScript(t *testing.T) {
	script, args, err := parseScript([]string{"return", "arguments[0] + arguments[1];", "ARGUMENTS", "1", "2"})
	require.NoError(t, err)
	require.Equal(t, "return arguments[0] + arguments[1];", script)
	require.Equal(t, []interface{}{"1", "2"}, args)

	dir := t.TempDir()
	path := filepath.Join(dir, "script.js")
	require.NoError(t, ioutil.WriteFile(path, []byte("return 42;"), 0644))
	script, _, err = parseScript([]string{path})
	require.NoError(t, err)
	require.Equal(t, "return 42;", script)

	_, _, err = parseScript([]string{"ARGUMENTS", "1"})
	require.True(t, trace.IsBadParameter(err))
}

func TestKeys(t *testing.T) {
	key, err := parseKey(`\13`)
	require.NoError(t, err)
	require.Equal(t, "\r", key)

	key, err = parseKey("ENTER")
	require.NoError(t, err)
	require.Equal(t, selenium.EnterKey, key)

	_, err = parseKey("NOT_A_KEY")
	require.True(t, trace.IsBadParameter(err))

	require.Equal(t, selenium.ControlKey+"a"+selenium.NullKey, parseKeySequence("CTRL+a"))
	require.Equal(t, "hello", parseKeySequence("hello"))

	modifiers, err := parseModifiers("ctrl+SHIFT")
	require.NoError(t, err)
	require.Equal(t, []string{selenium.ControlKey, selenium.ShiftKey}, modifiers)
	_, err = parseModifiers("CTRL+ENTER")
	require.True(t, trace.IsBadParameter(err))
}

func TestCapturePageScreenshot(t *testing.T) {
	wd := newFakeDriver()
	wd.image = []byte("png")
	lib := newLibrary(t, wd)
	ctx := context.Background()

	first, err := lib.CapturePageScreenshot(ctx, "")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(first, "selenium-screenshot-1.png"), first)
	second, err := lib.CapturePageScreenshot(ctx, "")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(second, "selenium-screenshot-2.png"), second)

	data, err := ioutil.ReadFile(first)
	require.NoError(t, err)
	require.Equal(t, "png", string(data))

	dir := t.TempDir()
	prev, err := lib.SetScreenshotDirectory(dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Dir(first), prev)
	location, err := lib.CapturePageScreenshot(ctx, "page.png")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "page.png"), location)
}

func TestPageShouldContainSearchesFrames(t *testing.T) {
	frame := newElement("iframe")
	wd := newFakeDriver().on(selenium.ByXPATH, "//frame|//iframe", frame)
	lib := newLibrary(t, wd)

	err := lib.PageShouldContain(context.Background(), "Welcome")
	require.True(t, trace.IsCompareFailed(err))
	require.Equal(t, []interface{}{nil, frame, nil, nil}, wd.frames)
}

func TestRunOnFailure(t *testing.T) {
	lib := newLibrary(t, nil)
	require.Equal(t, "capture_page_screenshot", lib.RunOnFailure())
	require.Equal(t, "capture_page_screenshot", lib.RegisterKeywordToRunOnFailure("NOTHING"))
	require.Equal(t, "", lib.RunOnFailure())
	require.Equal(t, "No keyword", lib.RegisterKeywordToRunOnFailure("log_source"))
	require.Equal(t, "log_source", lib.RunOnFailure())
}

func TestGetTableCell(t *testing.T) {
	table := newElement("table")
	row1, row2 := newElement("tr"), newElement("tr")
	a, b, c, d := newElement("th"), newElement("th"), newElement("td"), newElement("td")
	a.text, b.text, c.text, d.text = "Name", "Age", "Ann", "31"
	row1.children[selenium.ByXPATH+"|"+tableCellsXPath] = []selenium.WebElement{a, b}
	row2.children[selenium.ByXPATH+"|"+tableCellsXPath] = []selenium.WebElement{c, d}
	table.children[selenium.ByXPATH+"|"+tableRowsXPath] = []selenium.WebElement{row1, row2}
	table.children[selenium.ByXPATH+"|.//th"] = []selenium.WebElement{a, b}
	lib := newLibrary(t, newFakeDriver().on(selenium.ByID, "people", table))
	ctx := context.Background()

	cell, err := lib.GetTableCell(ctx, "id:people", -1, 2)
	require.NoError(t, err)
	require.Equal(t, "31", cell)

	_, err = lib.GetTableCell(ctx, "id:people", 3, 1)
	require.True(t, trace.IsNotFound(err))

	require.NoError(t, lib.TableColumnShouldContain(ctx, "id:people", 1, "Ann"))
	require.NoError(t, lib.TableRowShouldContain(ctx, "id:people", 1, "Age"))
	require.NoError(t, lib.TableHeaderShouldContain(ctx, "id:people", "Name"))
	require.True(t, trace.IsCompareFailed(lib.TableCellShouldContain(ctx, "id:people", 2, 1, "Bob")))
}
