package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/defaults"
	"github.com/testproject-io/robotkeywords/lib/wait"

	"github.com/gravitational/trace"
)

const timeoutPlaceholder = "<TIMEOUT>"

// waitUntil polls condition until it holds or the timeout expires.
// Errors returned by condition count as the condition not holding yet.
// On timeout the error message is message, or the default built from format,
// with <TIMEOUT> replaced by the effective timeout.
func (l *Library) waitUntil(ctx context.Context, timeout time.Duration, message string,
	condition func() (bool, error), format string, args ...interface{}) error {
	timeout = l.timeoutOr(timeout)
	err := wait.Until(ctx, timeout, defaults.PollInterval, func() error {
		ok, err := condition()
		if err != nil {
			return trace.Wrap(err)
		}
		if !ok {
			return wait.Continue("condition not met")
		}
		return nil
	})
	if err == nil {
		return nil
	}
	if !trace.IsLimitExceeded(err) {
		return trace.Wrap(err)
	}
	if message == "" {
		message = fmt.Sprintf(format, args...)
	}
	return trace.LimitExceeded("%v", strings.Replace(message, timeoutPlaceholder, timeout.String(), -1))
}

// WaitForCondition waits until the JavaScript condition returns true
func (l *Library) WaitForCondition(ctx context.Context, condition string, timeout time.Duration, message string) error {
	if !strings.Contains(condition, "return") {
		return trace.BadParameter("Condition '%v' did not have mandatory 'return'.", condition)
	}
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		result, err := l.executeScript(ctx, condition)
		if err != nil {
			return false, trace.Wrap(err)
		}
		return truthy(result), nil
	}, "Condition '%v' did not become true in %v.", condition, timeoutPlaceholder)
}

func truthy(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return false
	case bool:
		return value
	case string:
		return value != ""
	case float64:
		return value != 0
	}
	return true
}

// WaitUntilLocationIs waits until the current URL is expected
func (l *Library) WaitUntilLocationIs(ctx context.Context, expected string, timeout time.Duration, message string) error {
	return l.waitLocation(ctx, timeout, message, func(url string) bool { return url == expected },
		"Location did not become '%v' in %v.", expected, timeoutPlaceholder)
}

// WaitUntilLocationIsNot waits until the current URL is not location
func (l *Library) WaitUntilLocationIsNot(ctx context.Context, location string, timeout time.Duration, message string) error {
	return l.waitLocation(ctx, timeout, message, func(url string) bool { return url != location },
		"Location is still '%v' in %v.", location, timeoutPlaceholder)
}

// WaitUntilLocationContains waits until the current URL contains expected
func (l *Library) WaitUntilLocationContains(ctx context.Context, expected string, timeout time.Duration, message string) error {
	return l.waitLocation(ctx, timeout, message, func(url string) bool { return strings.Contains(url, expected) },
		"Location did not contain '%v' in %v.", expected, timeoutPlaceholder)
}

// WaitUntilLocationDoesNotContain waits until the current URL does not contain location
func (l *Library) WaitUntilLocationDoesNotContain(ctx context.Context, location string, timeout time.Duration, message string) error {
	return l.waitLocation(ctx, timeout, message, func(url string) bool { return !strings.Contains(url, location) },
		"Location still contains '%v' in %v.", location, timeoutPlaceholder)
}

func (l *Library) waitLocation(ctx context.Context, timeout time.Duration, message string,
	match func(string) bool, format string, args ...interface{}) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		url, err := l.GetLocation(ctx)
		if err != nil {
			return false, trace.Wrap(err)
		}
		return match(url), nil
	}, format, args...)
}

// WaitUntilPageContains waits until text appears on the page
func (l *Library) WaitUntilPageContains(ctx context.Context, text string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		return l.pageContainsText(ctx, text)
	}, "Text '%v' did not appear in %v.", text, timeoutPlaceholder)
}

// WaitUntilPageDoesNotContain waits until text disappears from the page
func (l *Library) WaitUntilPageDoesNotContain(ctx context.Context, text string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		found, err := l.pageContainsText(ctx, text)
		return !found, trace.Wrap(err)
	}, "Text '%v' did not disappear in %v.", text, timeoutPlaceholder)
}

// WaitUntilPageContainsElement waits until locator matches an element, or
// exactly limit elements unless limit is NoLimit
func (l *Library) WaitUntilPageContainsElement(ctx context.Context, loc string, timeout time.Duration, message string, limit int) error {
	if limit == NoLimit {
		return l.waitUntil(ctx, timeout, message, func() (bool, error) {
			count, err := l.GetElementCount(ctx, loc)
			return count > 0, trace.Wrap(err)
		}, "Element '%v' did not appear in %v.", loc, timeoutPlaceholder)
	}
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		count, err := l.GetElementCount(ctx, loc)
		return count == limit, trace.Wrap(err)
	}, "Page should have contained '%v' %v element(s) within %v.", limit, loc, timeoutPlaceholder)
}

// WaitUntilPageDoesNotContainElement waits until locator matches no element, or
// anything but limit elements unless limit is NoLimit
func (l *Library) WaitUntilPageDoesNotContainElement(ctx context.Context, loc string, timeout time.Duration, message string, limit int) error {
	if limit == NoLimit {
		return l.waitUntil(ctx, timeout, message, func() (bool, error) {
			count, err := l.GetElementCount(ctx, loc)
			return count == 0, trace.Wrap(err)
		}, "Element '%v' did not disappear in %v.", loc, timeoutPlaceholder)
	}
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		count, err := l.GetElementCount(ctx, loc)
		return count != limit, trace.Wrap(err)
	}, "Page should have not contained '%v' %v element(s) within %v.", limit, loc, timeoutPlaceholder)
}

// WaitUntilElementIsVisible waits until the element is displayed
func (l *Library) WaitUntilElementIsVisible(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		return l.isVisible(ctx, loc)
	}, "Element '%v' not visible after %v.", loc, timeoutPlaceholder)
}

// WaitUntilElementIsNotVisible waits until the element is hidden or removed
func (l *Library) WaitUntilElementIsNotVisible(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		count, err := l.GetElementCount(ctx, loc)
		if err != nil || count == 0 {
			return count == 0, trace.Wrap(err)
		}
		visible, err := l.isVisible(ctx, loc)
		return !visible, trace.Wrap(err)
	}, "Element '%v' still visible after %v.", loc, timeoutPlaceholder)
}

// WaitUntilElementIsEnabled waits until the element is enabled
func (l *Library) WaitUntilElementIsEnabled(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		return l.isEnabled(ctx, loc)
	}, "Element '%v' was not enabled in %v.", loc, timeoutPlaceholder)
}

// WaitUntilElementContains waits until the text of the element contains text
func (l *Library) WaitUntilElementContains(ctx context.Context, loc, text string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		actual, err := l.GetText(ctx, loc)
		return contains(actual, text, false), trace.Wrap(err)
	}, "Element '%v' did not get text '%v' in %v.", loc, text, timeoutPlaceholder)
}

// WaitUntilElementDoesNotContain waits until the text of the element no longer contains text
func (l *Library) WaitUntilElementDoesNotContain(ctx context.Context, loc, text string, timeout time.Duration, message string) error {
	return l.waitUntil(ctx, timeout, message, func() (bool, error) {
		actual, err := l.GetText(ctx, loc)
		if err != nil {
			return false, trace.Wrap(err)
		}
		return !contains(actual, text, false), nil
	}, "Element '%v' still had text '%v' after %v.", loc, text, timeoutPlaceholder)
}
