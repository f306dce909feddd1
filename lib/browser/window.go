package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/constants"
	"github.com/testproject-io/robotkeywords/lib/wait"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// windowInfo describes an open window of a browser
type windowInfo struct {
	handle string
	id     string
	name   string
	title  string
	url    string
}

// switchBrowser selects the browser by index or alias unless it is CURRENT or empty
func (l *Library) switchBrowser(browser string) error {
	browser = strings.TrimSpace(browser)
	if browser == "" || strings.EqualFold(browser, constants.BrowserCurrent) {
		return nil
	}
	return trace.Wrap(l.cache.switchTo(browser))
}

// windows collects information about every window of the current browser.
// The driver is switched back to the original window afterwards.
func (l *Library) windows(ctx context.Context) ([]windowInfo, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	original, err := wd.CurrentWindowHandle()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	handles, err := wd.WindowHandles()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	defer wd.SwitchWindow(original)
	infos := make([]windowInfo, 0, len(handles))
	for _, handle := range handles {
		if err := wd.SwitchWindow(handle); err != nil {
			return nil, trace.Wrap(err)
		}
		info, err := currentWindow(wd, handle)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		infos = append(infos, *info)
	}
	return infos, nil
}

func currentWindow(wd selenium.WebDriver, handle string) (*windowInfo, error) {
	raw, err := wd.ExecuteScript("return [window.id, window.name];", []interface{}{})
	if err != nil {
		return nil, trace.Wrap(err)
	}
	info := &windowInfo{handle: handle, id: "undefined", name: "undefined"}
	if pair, ok := raw.([]interface{}); ok && len(pair) == 2 {
		if pair[0] != nil {
			info.id = fmt.Sprint(pair[0])
		}
		if name, ok := pair[1].(string); ok && name != "" {
			info.name = name
		}
	}
	if info.title, err = wd.Title(); err != nil {
		return nil, trace.Wrap(err)
	}
	if info.url, err = wd.CurrentURL(); err != nil {
		return nil, trace.Wrap(err)
	}
	return info, nil
}

// SwitchWindow switches to the window matching locator and returns the handle
// of the previous window. Locator is MAIN, NEW, CURRENT, a window handle, or a
// name, title or URL optionally prefixed with name:, title: or url:.
func (l *Library) SwitchWindow(ctx context.Context, locator string, timeout time.Duration, browser string) (string, error) {
	if err := l.switchBrowser(browser); err != nil {
		return "", trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	prev, err := wd.CurrentWindowHandle()
	if err != nil {
		// the current window may have been closed
		prev = ""
	}
	locator = strings.TrimSpace(locator)
	if locator == "" {
		locator = constants.WindowMain
	}
	err = wait.Until(ctx, l.timeoutOr(timeout), 0, func() error {
		return l.selectWindow(ctx, wd, locator, prev)
	})
	if err != nil {
		if trace.IsLimitExceeded(err) {
			return "", trace.NotFound("No window matching handle, name, title or URL '%v' found.", locator)
		}
		return "", trace.Wrap(err)
	}
	return prev, nil
}

// SelectWindow is an alias of SwitchWindow with the default timeout in the current browser
func (l *Library) SelectWindow(ctx context.Context, locator string) (string, error) {
	return l.SwitchWindow(ctx, locator, 0, constants.BrowserCurrent)
}

func (l *Library) selectWindow(ctx context.Context, wd selenium.WebDriver, locator, current string) error {
	switch strings.ToUpper(locator) {
	case constants.WindowCurrent:
		return nil
	case constants.WindowMain:
		handles, err := wd.WindowHandles()
		if err != nil {
			return trace.Wrap(err)
		}
		if len(handles) == 0 {
			return trace.NotFound("no windows")
		}
		return trace.Wrap(wd.SwitchWindow(handles[0]))
	case constants.WindowNew:
		handles, err := wd.WindowHandles()
		if err != nil {
			return trace.Wrap(err)
		}
		if len(handles) == 0 || handles[len(handles)-1] == current {
			return trace.NotFound("no new window")
		}
		return trace.Wrap(wd.SwitchWindow(handles[len(handles)-1]))
	}
	infos, err := l.windows(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	match := windowMatcher(locator)
	for _, info := range infos {
		if match(info) {
			return trace.Wrap(wd.SwitchWindow(info.handle))
		}
	}
	return trace.NotFound("no window matching %q", locator)
}

func windowMatcher(locator string) func(windowInfo) bool {
	if idx := strings.IndexAny(locator, ":="); idx > 0 {
		value := strings.TrimSpace(locator[idx+1:])
		switch strings.ToLower(strings.TrimSpace(locator[:idx])) {
		case "name":
			return func(w windowInfo) bool { return w.name == value }
		case "title":
			return func(w windowInfo) bool { return w.title == value }
		case "url":
			return func(w windowInfo) bool { return w.url == value }
		}
	}
	return func(w windowInfo) bool {
		return w.handle == locator || w.name == locator || w.title == locator || w.url == locator
	}
}

// CloseWindow closes the current window
func (l *Library) CloseWindow(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	handle, err := wd.CurrentWindowHandle()
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.CloseWindow(handle))
}

// GetWindowHandles returns the handles of all windows of the browser
func (l *Library) GetWindowHandles(ctx context.Context, browser string) ([]string, error) {
	if err := l.switchBrowser(browser); err != nil {
		return nil, trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	handles, err := wd.WindowHandles()
	return handles, trace.Wrap(err)
}

// GetWindowIdentifiers returns the window.id of all windows of the browser
func (l *Library) GetWindowIdentifiers(ctx context.Context, browser string) ([]string, error) {
	return l.windowField(ctx, browser, func(w windowInfo) string { return w.id })
}

// GetWindowNames returns the window.name of all windows of the browser
func (l *Library) GetWindowNames(ctx context.Context, browser string) ([]string, error) {
	return l.windowField(ctx, browser, func(w windowInfo) string { return w.name })
}

// GetWindowTitles returns the titles of all windows of the browser
func (l *Library) GetWindowTitles(ctx context.Context, browser string) ([]string, error) {
	return l.windowField(ctx, browser, func(w windowInfo) string { return w.title })
}

// GetLocations returns the URLs of all windows of the browser
func (l *Library) GetLocations(ctx context.Context, browser string) ([]string, error) {
	return l.windowField(ctx, browser, func(w windowInfo) string { return w.url })
}

func (l *Library) windowField(ctx context.Context, browser string, field func(windowInfo) string) ([]string, error) {
	if err := l.switchBrowser(browser); err != nil {
		return nil, trace.Wrap(err)
	}
	infos, err := l.windows(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	out := make([]string, 0, len(infos))
	for _, info := range infos {
		out = append(out, field(info))
	}
	return out, nil
}

// MaximizeBrowserWindow maximizes the current window
func (l *Library) MaximizeBrowserWindow(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.MaximizeWindow(""))
}

// GetWindowSize returns the outer, or inner, width and height of the current window
func (l *Library) GetWindowSize(ctx context.Context, inner bool) (width, height int, err error) {
	script := "return [window.outerWidth, window.outerHeight];"
	if inner {
		script = "return [window.innerWidth, window.innerHeight];"
	}
	return l.pair(ctx, script)
}

// SetWindowSize sets the outer, or inner, size of the current window
func (l *Library) SetWindowSize(ctx context.Context, width, height int, inner bool) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if !inner {
		return trace.Wrap(wd.ResizeWindow("", width, height))
	}
	outerWidth, outerHeight, err := l.GetWindowSize(ctx, false)
	if err != nil {
		return trace.Wrap(err)
	}
	innerWidth, innerHeight, err := l.GetWindowSize(ctx, true)
	if err != nil {
		return trace.Wrap(err)
	}
	err = wd.ResizeWindow("", width+outerWidth-innerWidth, height+outerHeight-innerHeight)
	if err != nil {
		return trace.Wrap(err)
	}
	innerWidth, innerHeight, err = l.GetWindowSize(ctx, true)
	if err != nil {
		return trace.Wrap(err)
	}
	if innerWidth != width || innerHeight != height {
		return trace.CompareFailed("Setting the inner size of the window to %vx%v failed, it is %vx%v.",
			width, height, innerWidth, innerHeight)
	}
	return nil
}

// GetWindowPosition returns the screen coordinates of the current window
func (l *Library) GetWindowPosition(ctx context.Context) (x, y int, err error) {
	return l.pair(ctx, "return [window.screenX, window.screenY];")
}

// SetWindowPosition moves the current window to the screen coordinates
func (l *Library) SetWindowPosition(ctx context.Context, x, y int) error {
	_, err := l.executeScript(ctx, "window.moveTo(arguments[0], arguments[1]);", x, y)
	return trace.Wrap(err)
}

func (l *Library) pair(ctx context.Context, script string) (int, int, error) {
	raw, err := l.executeScript(ctx, script)
	if err != nil {
		return 0, 0, trace.Wrap(err)
	}
	values, ok := raw.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, trace.BadParameter("unexpected script result %v", raw)
	}
	a, ok := values[0].(float64)
	if !ok {
		return 0, 0, trace.BadParameter("unexpected script result %v", raw)
	}
	b, ok := values[1].(float64)
	if !ok {
		return 0, 0, trace.BadParameter("unexpected script result %v", raw)
	}
	return int(a), int(b), nil
}
