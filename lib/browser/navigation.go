package browser

import (
	"context"
	"strings"

	"github.com/testproject-io/robotkeywords/lib/constants"
	"github.com/testproject-io/robotkeywords/lib/xlog"

	"github.com/dustin/go-humanize"
	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// CloseBrowser closes the current browser
func (l *Library) CloseBrowser(ctx context.Context) error {
	if !l.HasBrowser() {
		return nil
	}
	l.WithField("index", l.cache.currentIndex()).Info("Closing browser.")
	return trace.Wrap(l.cache.closeCurrent())
}

// CloseAllBrowsers closes all open browsers and resets the browser cache
func (l *Library) CloseAllBrowsers(ctx context.Context) error {
	l.Debug("Closing all browsers.")
	return trace.Wrap(l.cache.closeAll())
}

// SwitchBrowser makes the browser with the given index or alias current
func (l *Library) SwitchBrowser(indexOrAlias string) error {
	if err := l.cache.switchTo(indexOrAlias); err != nil {
		return trace.Wrap(err)
	}
	l.Debugf("Switched to browser with index or alias '%v'.", indexOrAlias)
	return nil
}

// GetBrowserIDs returns the indexes of all open browsers
func (l *Library) GetBrowserIDs() []int {
	return l.cache.ids()
}

// GetBrowserAliases returns the aliases of all open browsers mapped to their indexes
func (l *Library) GetBrowserAliases() map[string]int {
	return l.cache.aliasMap()
}

// GetSessionID returns the WebDriver session id of the current browser
func (l *Library) GetSessionID(ctx context.Context) (string, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return wd.SessionID(), nil
}

// GetSource returns the source of the current page or frame
func (l *Library) GetSource(ctx context.Context) (string, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	source, err := wd.PageSource()
	return source, trace.Wrap(err)
}

// GetTitle returns the title of the current page
func (l *Library) GetTitle(ctx context.Context) (string, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	title, err := wd.Title()
	return title, trace.Wrap(err)
}

// GetLocation returns the URL of the current page
func (l *Library) GetLocation(ctx context.Context) (string, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	url, err := wd.CurrentURL()
	return url, trace.Wrap(err)
}

// LocationShouldBe verifies that the current URL is exactly url
func (l *Library) LocationShouldBe(ctx context.Context, url, message string) error {
	actual, err := l.GetLocation(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if actual != url {
		return failure(message, "Location should have been '%v' but was '%v'.", url, actual)
	}
	l.Infof("Current location is '%v'.", url)
	return nil
}

// LocationShouldContain verifies that the current URL contains expected
func (l *Library) LocationShouldContain(ctx context.Context, expected, message string) error {
	actual, err := l.GetLocation(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if !strings.Contains(actual, expected) {
		return failure(message, "Location should have contained '%v' but it was '%v'.", expected, actual)
	}
	l.Infof("Current location contains '%v'.", expected)
	return nil
}

// LogLocation logs and returns the current URL
func (l *Library) LogLocation(ctx context.Context) (string, error) {
	url, err := l.GetLocation(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	l.Info(url)
	return url, nil
}

// LogSource logs the page source at level and returns it. Level NONE skips logging.
func (l *Library) LogSource(ctx context.Context, level string) (string, error) {
	source, err := l.GetSource(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	if strings.EqualFold(strings.TrimSpace(level), constants.LogLevelNone) {
		return source, nil
	}
	lvl, err := xlog.ParseLevel(level)
	if err != nil {
		return "", trace.Wrap(err)
	}
	logAt(l.WithField("size", humanize.Bytes(uint64(len(source)))), lvl, source)
	return source, nil
}

// LogTitle logs and returns the title of the current page
func (l *Library) LogTitle(ctx context.Context) (string, error) {
	title, err := l.GetTitle(ctx)
	if err != nil {
		return "", trace.Wrap(err)
	}
	l.Info(title)
	return title, nil
}

// TitleShouldBe verifies that the title of the current page is title
func (l *Library) TitleShouldBe(ctx context.Context, title, message string) error {
	actual, err := l.GetTitle(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	if actual != title {
		return failure(message, "Title should have been '%v' but was '%v'.", title, actual)
	}
	l.Infof("Page title is '%v'.", title)
	return nil
}

// GoBack navigates back in the browser history
func (l *Library) GoBack(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.Back())
}

// GoTo navigates the current browser to url
func (l *Library) GoTo(ctx context.Context, url string) error {
	l.Infof("Opening url '%v'.", url)
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.Get(url))
}

// ReloadPage reloads the current page
func (l *Library) ReloadPage(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.Refresh())
}

func logAt(log logrus.FieldLogger, level logrus.Level, message string) {
	switch level {
	case logrus.TraceLevel, logrus.DebugLevel:
		log.Debug(message)
	case logrus.WarnLevel:
		log.Warn(message)
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		log.Error(message)
	default:
		log.Info(message)
	}
}
