package browser

import (
	"context"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/constants"
	"github.com/testproject-io/robotkeywords/lib/wait"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// HandleAlert waits for an alert, handles it with action and returns its text.
// Action is one of ACCEPT, DISMISS or LEAVE.
func (l *Library) HandleAlert(ctx context.Context, action string, timeout time.Duration) (string, error) {
	action, err := parseAlertAction(action)
	if err != nil {
		return "", trace.Wrap(err)
	}
	wd, text, err := l.waitAlert(ctx, timeout)
	if err != nil {
		return "", trace.Wrap(err)
	}
	if err := handleAlert(wd, action); err != nil {
		return "", trace.Wrap(err)
	}
	return text, nil
}

// InputTextIntoAlert types text into the alert prompt and handles the alert with action
func (l *Library) InputTextIntoAlert(ctx context.Context, text, action string, timeout time.Duration) error {
	action, err := parseAlertAction(action)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, _, err := l.waitAlert(ctx, timeout)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := wd.SetAlertText(text); err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(handleAlert(wd, action))
}

// AlertShouldBePresent verifies that an alert appears and, unless text is empty,
// that its message is text. The alert is handled with action.
func (l *Library) AlertShouldBePresent(ctx context.Context, text, action string, timeout time.Duration) error {
	message, err := l.HandleAlert(ctx, action, timeout)
	if err != nil {
		return trace.Wrap(err)
	}
	if text != "" && message != text {
		return trace.CompareFailed("Alert message should have been '%v' but it was '%v'.", text, message)
	}
	return nil
}

// AlertShouldNotBePresent verifies that no alert appears within timeout.
// A zero timeout checks once. An alert that does appear is handled with action.
func (l *Library) AlertShouldNotBePresent(ctx context.Context, action string, timeout time.Duration) error {
	action, err := parseAlertAction(action)
	if err != nil {
		return trace.Wrap(err)
	}
	// a missing alert at the deadline is the expected outcome
	wd, text, err := l.waitAlertFor(ctx, timeout)
	if trace.IsLimitExceeded(err) {
		return nil
	}
	if err != nil {
		return trace.Wrap(err)
	}
	if err := handleAlert(wd, action); err != nil {
		return trace.Wrap(err)
	}
	return trace.CompareFailed("Alert with message '%v' present.", text)
}

func (l *Library) waitAlert(ctx context.Context, timeout time.Duration) (selenium.WebDriver, string, error) {
	wd, text, err := l.waitAlertFor(ctx, l.timeoutOr(timeout))
	if trace.IsLimitExceeded(err) {
		return nil, "", trace.LimitExceeded("Alert not found in %v.", l.timeoutOr(timeout))
	}
	return wd, text, trace.Wrap(err)
}

func (l *Library) waitAlertFor(ctx context.Context, timeout time.Duration) (selenium.WebDriver, string, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, "", trace.Wrap(err)
	}
	var text string
	err = wait.Until(ctx, timeout, 0, func() error {
		var err error
		text, err = wd.AlertText()
		return err
	})
	if err != nil {
		return nil, "", trace.Wrap(err)
	}
	return wd, text, nil
}

func parseAlertAction(action string) (string, error) {
	action = strings.ToUpper(strings.TrimSpace(action))
	switch action {
	case "":
		return constants.AlertAccept, nil
	case constants.AlertAccept, constants.AlertDismiss, constants.AlertLeave:
		return action, nil
	}
	return "", trace.BadParameter("invalid alert action %q, expected %v, %v or %v",
		action, constants.AlertAccept, constants.AlertDismiss, constants.AlertLeave)
}

func handleAlert(wd selenium.WebDriver, action string) error {
	switch action {
	case constants.AlertAccept:
		return trace.Wrap(wd.AcceptAlert())
	case constants.AlertDismiss:
		return trace.Wrap(wd.DismissAlert())
	}
	return nil
}
