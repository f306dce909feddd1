package keywords

import (
	"context"
	"fmt"
	"time"
)

// SelectWindow switches to the window matching locator and returns the previous window handle
func (l *Library) SelectWindow(ctx context.Context, locator string) (string, error) {
	return l.getString(ctx, "select_window", "Switched to "+locator, "",
		func() (string, error) { return l.browser.SelectWindow(ctx, locator) })
}

// SwitchWindow switches to the window matching locator in browser, waiting up to timeout
// for it to appear. Returns the previous window handle.
func (l *Library) SwitchWindow(ctx context.Context, locator string, timeout time.Duration, browser string) (string, error) {
	return l.getString(ctx, "switch_window", "Switched to "+locator, browser,
		func() (string, error) { return l.browser.SwitchWindow(ctx, locator, timeout, browser) })
}

// CloseWindow closes the current window
func (l *Library) CloseWindow(ctx context.Context) error {
	return l.do(ctx, "close_window", "Window closed", "",
		func() error { return l.browser.CloseWindow(ctx) })
}

// GetWindowHandles returns the window handles of browser
func (l *Library) GetWindowHandles(ctx context.Context, browser string) ([]string, error) {
	return l.getStrings(ctx, "get_window_handles", "Window Handles", "",
		func() ([]string, error) { return l.browser.GetWindowHandles(ctx, browser) })
}

// GetWindowIdentifiers returns the window ids of browser
func (l *Library) GetWindowIdentifiers(ctx context.Context, browser string) ([]string, error) {
	return l.getStrings(ctx, "get_window_identifiers", "Window Identifiers", "",
		func() ([]string, error) { return l.browser.GetWindowIdentifiers(ctx, browser) })
}

// GetWindowNames returns the window names of browser
func (l *Library) GetWindowNames(ctx context.Context, browser string) ([]string, error) {
	return l.getStrings(ctx, "get_window_names", "Window Names", "",
		func() ([]string, error) { return l.browser.GetWindowNames(ctx, browser) })
}

// GetWindowTitles returns the window titles of browser
func (l *Library) GetWindowTitles(ctx context.Context, browser string) ([]string, error) {
	return l.getStrings(ctx, "get_window_titles", "Window Titles", "",
		func() ([]string, error) { return l.browser.GetWindowTitles(ctx, browser) })
}

// GetLocations returns the URLs of all windows of browser
func (l *Library) GetLocations(ctx context.Context, browser string) ([]string, error) {
	return l.getStrings(ctx, "get_locations", "All Locations", "",
		func() ([]string, error) { return l.browser.GetLocations(ctx, browser) })
}

// MaximizeBrowserWindow maximizes the current window
func (l *Library) MaximizeBrowserWindow(ctx context.Context) error {
	return l.do(ctx, "maximize_browser_window", "Window Maximized", "",
		func() error { return l.browser.MaximizeBrowserWindow(ctx) })
}

// GetWindowSize returns the outer, or with inner the viewport, size of the current window
func (l *Library) GetWindowSize(ctx context.Context, inner bool) (width, height int, err error) {
	_, err = l.base(ctx, "get_window_size", "Window size", "", func() (interface{}, error) {
		width, height, err = l.browser.GetWindowSize(ctx, inner)
		return []int{width, height}, err
	})
	return width, height, err
}

// SetWindowSize resizes the current window, or its viewport with inner
func (l *Library) SetWindowSize(ctx context.Context, width, height int, inner bool) error {
	return l.do(ctx, "set_window_size",
		fmt.Sprintf("Size set to %v, %v", width, height), fmt.Sprintf("Width: %v, Height: %v", width, height),
		func() error { return l.browser.SetWindowSize(ctx, width, height, inner) })
}

// GetWindowPosition returns the position of the current window
func (l *Library) GetWindowPosition(ctx context.Context) (x, y int, err error) {
	_, err = l.base(ctx, "get_window_position", "Window position", "", func() (interface{}, error) {
		x, y, err = l.browser.GetWindowPosition(ctx)
		return []int{x, y}, err
	})
	return x, y, err
}

// SetWindowPosition moves the current window
func (l *Library) SetWindowPosition(ctx context.Context, x, y int) error {
	return l.do(ctx, "set_window_position",
		fmt.Sprintf("Position set to %v, %v", x, y), fmt.Sprintf("X: %v, Y: %v", x, y),
		func() error { return l.browser.SetWindowPosition(ctx, x, y) })
}
