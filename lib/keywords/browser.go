package keywords

import (
	"context"
	"fmt"
	"time"
)

// SwitchBrowser makes the browser with the index or alias current
func (l *Library) SwitchBrowser(ctx context.Context, indexOrAlias string) error {
	return l.do(ctx, "switch_browser", "Switched to "+indexOrAlias, indexOrAlias,
		func() error { return l.browser.SwitchBrowser(indexOrAlias) })
}

// GetBrowserIDs returns the indexes of the open browsers
func (l *Library) GetBrowserIDs(ctx context.Context) ([]int, error) {
	ids := l.browser.GetBrowserIDs()
	_, err := l.base(ctx, "get_browser_ids", "Browser Ids", "",
		func() (interface{}, error) { return ids, nil })
	return ids, err
}

// GetBrowserAliases returns the aliases of the open browsers mapped to their indexes
func (l *Library) GetBrowserAliases(ctx context.Context) (map[string]int, error) {
	aliases := l.browser.GetBrowserAliases()
	_, err := l.base(ctx, "get_browser_aliases", "Browser Aliases", "",
		func() (interface{}, error) { return aliases, nil })
	return aliases, err
}

// CloseBrowser quits the current browser
func (l *Library) CloseBrowser(ctx context.Context) error {
	return l.do(ctx, "close_browser", "Closed current browser", "",
		func() error { return l.browser.CloseBrowser(ctx) })
}

// CloseAllBrowsers quits all open browsers
func (l *Library) CloseAllBrowsers(ctx context.Context) error {
	return l.do(ctx, "close_all_browsers", "Closed all open browsers", "",
		func() error { return l.browser.CloseAllBrowsers(ctx) })
}

// GetSessionID returns the WebDriver session id of the current browser
func (l *Library) GetSessionID(ctx context.Context) (string, error) {
	return l.getString(ctx, "get_session_id", "Session ID", "",
		func() (string, error) { return l.browser.GetSessionID(ctx) })
}

// GetSource returns the page source
func (l *Library) GetSource(ctx context.Context) (string, error) {
	return l.getString(ctx, "get_source", "Page Source", "",
		func() (string, error) { return l.browser.GetSource(ctx) })
}

// GetTitle returns the page title
func (l *Library) GetTitle(ctx context.Context) (string, error) {
	return l.getString(ctx, "get_title", "Page Title", "",
		func() (string, error) { return l.browser.GetTitle(ctx) })
}

// GetLocation returns the current URL
func (l *Library) GetLocation(ctx context.Context) (string, error) {
	return l.getString(ctx, "get_location", "Window URL", "",
		func() (string, error) { return l.browser.GetLocation(ctx) })
}

// LocationShouldBe verifies the current URL is url
func (l *Library) LocationShouldBe(ctx context.Context, url, message string) error {
	return l.do(ctx, "location_should_be", "URL is: "+url, url,
		func() error { return l.browser.LocationShouldBe(ctx, url, message) })
}

// LocationShouldContain verifies the current URL contains expected
func (l *Library) LocationShouldContain(ctx context.Context, expected, message string) error {
	return l.do(ctx, "location_should_contain", "URL contains: "+expected, expected,
		func() error { return l.browser.LocationShouldContain(ctx, expected, message) })
}

// LogLocation logs and returns the current URL
func (l *Library) LogLocation(ctx context.Context) (string, error) {
	return l.getString(ctx, "log_location", "Location and logged it", "",
		func() (string, error) { return l.browser.LogLocation(ctx) })
}

// LogSource logs the page source at level and returns it
func (l *Library) LogSource(ctx context.Context, level string) (string, error) {
	return l.getString(ctx, "log_source", "Source and logged it", "",
		func() (string, error) { return l.browser.LogSource(ctx, level) })
}

// LogTitle logs and returns the page title
func (l *Library) LogTitle(ctx context.Context) (string, error) {
	return l.getString(ctx, "log_title", "Title and logged it", "",
		func() (string, error) { return l.browser.LogTitle(ctx) })
}

// TitleShouldBe verifies the page title
func (l *Library) TitleShouldBe(ctx context.Context, title, message string) error {
	return l.do(ctx, "title_should_be", "Title is "+title, title,
		func() error { return l.browser.TitleShouldBe(ctx, title, message) })
}

// GoBack navigates back in the browser history
func (l *Library) GoBack(ctx context.Context) error {
	return l.do(ctx, "go_back", "Navigated Back", "",
		func() error { return l.browser.GoBack(ctx) })
}

// GoTo navigates the current browser to url
func (l *Library) GoTo(ctx context.Context, url string) error {
	return l.do(ctx, "go_to", "Navigated to "+url, url,
		func() error { return l.browser.GoTo(ctx, url) })
}

// ReloadPage reloads the current page
func (l *Library) ReloadPage(ctx context.Context) error {
	return l.do(ctx, "reload_page", "Reloaded page", "",
		func() error { return l.browser.ReloadPage(ctx) })
}

// GetSeleniumSpeed returns the delay before every browser command
func (l *Library) GetSeleniumSpeed(ctx context.Context) (time.Duration, error) {
	return l.getDuration(ctx, "get_selenium_speed", "Delay between each selenium command", "",
		func() (time.Duration, error) { return l.browser.GetSeleniumSpeed(), nil })
}

// GetSeleniumTimeout returns the default timeout of wait keywords
func (l *Library) GetSeleniumTimeout(ctx context.Context) (time.Duration, error) {
	return l.getDuration(ctx, "get_selenium_timeout", "Timeout between various keywords", "",
		func() (time.Duration, error) { return l.browser.GetSeleniumTimeout(), nil })
}

// GetSeleniumImplicitWait returns the implicit wait applied to browsers
func (l *Library) GetSeleniumImplicitWait(ctx context.Context) (time.Duration, error) {
	return l.getDuration(ctx, "get_selenium_implicit_wait", "Implicit wait value", "",
		func() (time.Duration, error) { return l.browser.GetSeleniumImplicitWait(), nil })
}

// SetSeleniumSpeed sets the delay before every browser command and returns the previous one
func (l *Library) SetSeleniumSpeed(ctx context.Context, speed time.Duration) (time.Duration, error) {
	return l.getDuration(ctx, "set_selenium_speed", fmt.Sprintf("Selenium Speed set to %v", speed), speed.String(),
		func() (time.Duration, error) { return l.browser.SetSeleniumSpeed(speed) })
}

// SetSeleniumTimeout sets the default timeout of wait keywords and returns the previous one
func (l *Library) SetSeleniumTimeout(ctx context.Context, timeout time.Duration) (time.Duration, error) {
	return l.getDuration(ctx, "set_selenium_timeout", fmt.Sprintf("Timeout was set to %v", timeout), timeout.String(),
		func() (time.Duration, error) { return l.browser.SetSeleniumTimeout(timeout) })
}

// SetSeleniumImplicitWait sets the implicit wait of all browsers and returns the previous one
func (l *Library) SetSeleniumImplicitWait(ctx context.Context, wait time.Duration) (time.Duration, error) {
	return l.getDuration(ctx, "set_selenium_implicit_wait", fmt.Sprintf("Implicit wait set to %v", wait), wait.String(),
		func() (time.Duration, error) { return l.browser.SetSeleniumImplicitWait(ctx, wait) })
}

// SetBrowserImplicitWait sets the implicit wait of the current browser only
func (l *Library) SetBrowserImplicitWait(ctx context.Context, wait time.Duration) error {
	return l.do(ctx, "set_browser_implicit_wait", fmt.Sprintf("Browser implicit wait set to %v", wait), wait.String(),
		func() error { return l.browser.SetBrowserImplicitWait(ctx, wait) })
}

func (l *Library) getDuration(ctx context.Context, name, message, description string, fn func() (time.Duration, error)) (time.Duration, error) {
	value, err := l.base(ctx, name, message, description, func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		return 0, err
	}
	return value.(time.Duration), nil
}
