package browser

import (
	"context"
	"strings"

	"github.com/testproject-io/robotkeywords/lib/defaults"
	"github.com/testproject-io/robotkeywords/lib/screenshot"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// SetScreenshotDirectory sets the location screenshots are saved to and
// returns the previous one. Empty dir resets it to the working directory.
func (l *Library) SetScreenshotDirectory(dir string) (string, error) {
	store, err := screenshot.New(dir, l.region)
	if err != nil {
		return "", trace.Wrap(err)
	}
	prev := l.store.Dir()
	l.store = store
	return prev, nil
}

// Screenshot captures the current page as a PNG image
func (l *Library) Screenshot(ctx context.Context) ([]byte, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	data, err := wd.Screenshot()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return data, nil
}

// CapturePageScreenshot saves a screenshot of the current page and returns its location.
// A {index} placeholder in filename is replaced by the first free index.
func (l *Library) CapturePageScreenshot(ctx context.Context, filename string) (string, error) {
	if !l.HasBrowser() {
		l.Info("Cannot capture screenshot because no browser is open.")
		return "", nil
	}
	data, err := l.Screenshot(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return l.saveScreenshot(ctx, orDefault(filename, defaults.ScreenshotName), data)
}

// CaptureElementScreenshot saves a screenshot of the element and returns its location
func (l *Library) CaptureElementScreenshot(ctx context.Context, loc, filename string) (string, error) {
	if !l.HasBrowser() {
		l.Info("Cannot capture screenshot from element because no browser is open.")
		return "", nil
	}
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return "", trace.Wrap(err)
	}
	data, err := elem.Screenshot(true)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return l.saveScreenshot(ctx, orDefault(filename, defaults.ElementScreenshotName), data)
}

func (l *Library) saveScreenshot(ctx context.Context, filename string, data []byte) (string, error) {
	name, err := screenshot.ResolveName(ctx, l.store, filename)
	if err != nil {
		return "", trace.Wrap(err)
	}
	location, err := l.store.Save(ctx, name, data)
	if err != nil {
		return "", trace.Wrap(err)
	}
	l.WithFields(logrus.Fields{
		"location": location,
		"size":     humanize.Bytes(uint64(len(data))),
	}).Info("Screenshot saved.")
	return location, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
