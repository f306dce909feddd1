package keywords

import (
	"context"
	"fmt"
	"time"
)

// InputTextIntoAlert types text into the alert prompt and handles it with action
func (l *Library) InputTextIntoAlert(ctx context.Context, text, action string, timeout time.Duration) error {
	return l.do(ctx, "input_text_into_alert",
		fmt.Sprintf("Typed %v into alert\nAction used: %v", text, action), "Text: "+text,
		func() error { return l.browser.InputTextIntoAlert(ctx, text, action, timeout) })
}

// AlertShouldBePresent verifies an alert with text is open and handles it with action.
// An empty text accepts any alert.
func (l *Library) AlertShouldBePresent(ctx context.Context, text, action string, timeout time.Duration) error {
	return l.do(ctx, "alert_should_be_present", "Action used: "+action, "",
		func() error { return l.browser.AlertShouldBePresent(ctx, text, action, timeout) })
}

// AlertShouldNotBePresent verifies no alert opens within timeout
func (l *Library) AlertShouldNotBePresent(ctx context.Context, action string, timeout time.Duration) error {
	return l.do(ctx, "alert_should_not_be_present", "Action used: "+action, "",
		func() error { return l.browser.AlertShouldNotBePresent(ctx, action, timeout) })
}

// HandleAlert handles the open alert with action and returns its text
func (l *Library) HandleAlert(ctx context.Context, action string, timeout time.Duration) (string, error) {
	return l.getString(ctx, "handle_alert", "Alert handled with action: "+action, "",
		func() (string, error) { return l.browser.HandleAlert(ctx, action, timeout) })
}
