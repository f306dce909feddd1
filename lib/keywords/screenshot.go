package keywords

import (
	"context"
)

// CapturePageScreenshot saves a screenshot of the page and returns its location.
// Without a filename the screenshot is named after the library start time.
func (l *Library) CapturePageScreenshot(ctx context.Context, filename string) (string, error) {
	if filename == "" {
		filename = l.screenshotName
	}
	return l.getString(ctx, "capture_page_screenshot", "Screenshot captured file", filename,
		func() (string, error) { return l.browser.CapturePageScreenshot(ctx, filename) })
}

// CaptureElementScreenshot saves a screenshot of the element and returns its location
func (l *Library) CaptureElementScreenshot(ctx context.Context, loc, filename string) (string, error) {
	if filename == "" {
		filename = l.screenshotName
	}
	return l.getString(ctx, "capture_element_screenshot", "element screenshot file", filename,
		func() (string, error) { return l.browser.CaptureElementScreenshot(ctx, loc, filename) })
}

// SetScreenshotDirectory sets the screenshot location and returns the previous one
func (l *Library) SetScreenshotDirectory(ctx context.Context, dir string) (string, error) {
	return l.getString(ctx, "set_screenshot_directory", "previous set directory", dir,
		func() (string, error) { return l.browser.SetScreenshotDirectory(dir) })
}
