package keywords

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Wait keywords use the library timeout when timeout is zero. A custom
// message replaces the default failure message, <TIMEOUT> in it is replaced
// with the effective timeout.

// WaitForCondition waits until the JavaScript condition returns a true value
func (l *Library) WaitForCondition(ctx context.Context, condition string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_for_condition",
		waited(fmt.Sprintf("Condition: '%v' was met", condition), timeout), condition,
		func() error { return l.browser.WaitForCondition(ctx, condition, timeout, message) })
}

// WaitUntilLocationIs waits until the current URL is expected
func (l *Library) WaitUntilLocationIs(ctx context.Context, expected string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_location_is",
		waited(fmt.Sprintf("Location was '%v'", expected), timeout), expected,
		func() error { return l.browser.WaitUntilLocationIs(ctx, expected, timeout, message) })
}

// WaitUntilLocationIsNot waits until the current URL is not location
func (l *Library) WaitUntilLocationIsNot(ctx context.Context, location string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_location_is_not",
		waited(fmt.Sprintf("Location was not '%v'", location), timeout), location,
		func() error { return l.browser.WaitUntilLocationIsNot(ctx, location, timeout, message) })
}

// WaitUntilLocationContains waits until the current URL contains expected
func (l *Library) WaitUntilLocationContains(ctx context.Context, expected string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_location_contains",
		waited(fmt.Sprintf("Location contained '%v'", expected), timeout), expected,
		func() error { return l.browser.WaitUntilLocationContains(ctx, expected, timeout, message) })
}

// WaitUntilLocationDoesNotContain waits until the current URL does not contain location
func (l *Library) WaitUntilLocationDoesNotContain(ctx context.Context, location string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_location_does_not_contain",
		waited(fmt.Sprintf("Location does not contain '%v'", location), timeout), location,
		func() error { return l.browser.WaitUntilLocationDoesNotContain(ctx, location, timeout, message) })
}

// WaitUntilPageContains waits until the text appears on the page
func (l *Library) WaitUntilPageContains(ctx context.Context, text string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_page_contains",
		waited(fmt.Sprintf("Page contained '%v'", text), timeout), text,
		func() error { return l.browser.WaitUntilPageContains(ctx, text, timeout, message) })
}

// WaitUntilPageDoesNotContain waits until the text disappears from the page
func (l *Library) WaitUntilPageDoesNotContain(ctx context.Context, text string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_page_does_not_contain",
		waited(fmt.Sprintf("Page does not contain '%v'", text), timeout), text,
		func() error { return l.browser.WaitUntilPageDoesNotContain(ctx, text, timeout, message) })
}

// WaitUntilPageContainsElement waits until the locator matches elements,
// exactly limit of them unless limit is browser.NoLimit
func (l *Library) WaitUntilPageContainsElement(ctx context.Context, loc string, timeout time.Duration, message string, limit int) error {
	return l.do(ctx, "wait_until_page_contains_element",
		waited(fmt.Sprintf("Page contained '%v'", loc), timeout), loc,
		func() error { return l.browser.WaitUntilPageContainsElement(ctx, loc, timeout, message, limit) })
}

// WaitUntilPageDoesNotContainElement waits until the locator matches no
// elements, or a count other than limit unless limit is browser.NoLimit
func (l *Library) WaitUntilPageDoesNotContainElement(ctx context.Context, loc string, timeout time.Duration, message string, limit int) error {
	return l.do(ctx, "wait_until_page_does_not_contain_element",
		waited(fmt.Sprintf("Page does not contain '%v'", loc), timeout), loc,
		func() error { return l.browser.WaitUntilPageDoesNotContainElement(ctx, loc, timeout, message, limit) })
}

// WaitUntilElementIsVisible waits until the element is displayed
func (l *Library) WaitUntilElementIsVisible(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_element_is_visible",
		waited(fmt.Sprintf("Element '%v' was visible", loc), timeout), loc,
		func() error { return l.browser.WaitUntilElementIsVisible(ctx, loc, timeout, message) })
}

// WaitUntilElementIsNotVisible waits until the element is hidden
func (l *Library) WaitUntilElementIsNotVisible(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_element_is_not_visible",
		waited(fmt.Sprintf("Element '%v' was not visible", loc), timeout), loc,
		func() error { return l.browser.WaitUntilElementIsNotVisible(ctx, loc, timeout, message) })
}

// WaitUntilElementIsEnabled waits until the element is enabled
func (l *Library) WaitUntilElementIsEnabled(ctx context.Context, loc string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_element_is_enabled",
		waited(fmt.Sprintf("Element '%v' was enabled", loc), timeout), loc,
		func() error { return l.browser.WaitUntilElementIsEnabled(ctx, loc, timeout, message) })
}

// WaitUntilElementContains waits until the element text contains text
func (l *Library) WaitUntilElementContains(ctx context.Context, loc, text string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_element_contains",
		waited(fmt.Sprintf("Element '%v' contained %v", loc, text), timeout), text,
		func() error { return l.browser.WaitUntilElementContains(ctx, loc, text, timeout, message) })
}

// WaitUntilElementDoesNotContain waits until the element text does not contain text
func (l *Library) WaitUntilElementDoesNotContain(ctx context.Context, loc, text string, timeout time.Duration, message string) error {
	return l.do(ctx, "wait_until_element_does_not_contain",
		waited(fmt.Sprintf("Element '%v' does not contain %v", loc, text), timeout), text,
		func() error { return l.browser.WaitUntilElementDoesNotContain(ctx, loc, text, timeout, message) })
}

// waited formats the step message of a wait keyword
func waited(message string, timeout time.Duration) string {
	return strings.TrimSpace(message + " " + waitMessage(timeout))
}
