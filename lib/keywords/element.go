package keywords

import (
	"context"
	"fmt"

	"github.com/tebeka/selenium"
)

// GetWebElement returns the first element matching the locator
func (l *Library) GetWebElement(ctx context.Context, loc string) (selenium.WebElement, error) {
	value, err := l.base(ctx, "get_webelement", "first web element by the given locator", loc,
		func() (interface{}, error) { return l.browser.GetWebElement(ctx, loc) })
	if err != nil {
		return nil, err
	}
	return value.(selenium.WebElement), nil
}

// GetWebElements returns all elements matching the locator
func (l *Library) GetWebElements(ctx context.Context, loc string) ([]selenium.WebElement, error) {
	value, err := l.base(ctx, "get_webelements", "list of web elements by the given locator", loc,
		func() (interface{}, error) { return l.browser.GetWebElements(ctx, loc) })
	if err != nil {
		return nil, err
	}
	return value.([]selenium.WebElement), nil
}

// GetElementCount returns the number of elements matching the locator
func (l *Library) GetElementCount(ctx context.Context, loc string) (int, error) {
	return l.getInt(ctx, "get_element_count", fmt.Sprintf("element %q count", loc), "Element: "+loc,
		func() (int, error) { return l.browser.GetElementCount(ctx, loc) })
}

// ElementShouldContain verifies the element text contains expected
func (l *Library) ElementShouldContain(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	return l.do(ctx, "element_should_contain", fmt.Sprintf("Element contains %q", expected), loc,
		func() error { return l.browser.ElementShouldContain(ctx, loc, expected, message, ignoreCase) })
}

// ElementShouldNotContain verifies the element text does not contain expected
func (l *Library) ElementShouldNotContain(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	return l.do(ctx, "element_should_not_contain", fmt.Sprintf("Element does not contain %q", expected), loc,
		func() error { return l.browser.ElementShouldNotContain(ctx, loc, expected, message, ignoreCase) })
}

// PageShouldContainElement verifies the locator matches elements, exactly limit
// of them unless limit is browser.NoLimit
func (l *Library) PageShouldContainElement(ctx context.Context, loc, message, loglevel string, limit int) error {
	return l.do(ctx, "page_should_contain_element", fmt.Sprintf("Page contains %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainElement(ctx, loc, message, limit)
		}))
}

// PageShouldNotContainElement verifies the locator matches no element
func (l *Library) PageShouldNotContainElement(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_element", fmt.Sprintf("Page did not contain %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainElement(ctx, loc, message)
		}))
}

// PageShouldContain verifies the text is on the page or in any of its frames
func (l *Library) PageShouldContain(ctx context.Context, text, loglevel string) error {
	return l.do(ctx, "page_should_contain", fmt.Sprintf("Page contains %q", text), text,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContain(ctx, text)
		}))
}

// PageShouldNotContain verifies the text is neither on the page nor in its frames
func (l *Library) PageShouldNotContain(ctx context.Context, text, loglevel string) error {
	return l.do(ctx, "page_should_not_contain", fmt.Sprintf("Page did not contain %q", text), text,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContain(ctx, text)
		}))
}

// LocatorShouldMatchXTimes verifies the locator matches exactly count elements
func (l *Library) LocatorShouldMatchXTimes(ctx context.Context, loc string, count int, message, loglevel string) error {
	return l.do(ctx, "locator_should_match_x_times",
		fmt.Sprintf("%q matched \"%v\"", loc, count), fmt.Sprintf("Locator: %v, X: %v", loc, count),
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.LocatorShouldMatchXTimes(ctx, loc, count, message)
		}))
}

// AssignIDToElement sets the id attribute of the element
func (l *Library) AssignIDToElement(ctx context.Context, loc, id string) error {
	return l.do(ctx, "assign_id_to_element", fmt.Sprintf("ID was assigned to %q", id), loc,
		func() error { return l.browser.AssignIDToElement(ctx, loc, id) })
}

// ElementShouldBeDisabled verifies the element is disabled or read-only
func (l *Library) ElementShouldBeDisabled(ctx context.Context, loc string) error {
	return l.do(ctx, "element_should_be_disabled", "Element is disabled", loc,
		func() error { return l.browser.ElementShouldBeDisabled(ctx, loc) })
}

// ElementShouldBeEnabled verifies the element is enabled
func (l *Library) ElementShouldBeEnabled(ctx context.Context, loc string) error {
	return l.do(ctx, "element_should_be_enabled", "Element is enabled", loc,
		func() error { return l.browser.ElementShouldBeEnabled(ctx, loc) })
}

// ElementShouldBeFocused verifies the element has focus
func (l *Library) ElementShouldBeFocused(ctx context.Context, loc string) error {
	return l.do(ctx, "element_should_be_focused", "Element is focused", loc,
		func() error { return l.browser.ElementShouldBeFocused(ctx, loc) })
}

// ElementShouldBeVisible verifies the element is displayed
func (l *Library) ElementShouldBeVisible(ctx context.Context, loc, message string) error {
	return l.do(ctx, "element_should_be_visible", "Element is visible", loc,
		func() error { return l.browser.ElementShouldBeVisible(ctx, loc, message) })
}

// ElementShouldNotBeVisible verifies the element is not displayed
func (l *Library) ElementShouldNotBeVisible(ctx context.Context, loc, message string) error {
	return l.do(ctx, "element_should_not_be_visible", "Element is not visible", loc,
		func() error { return l.browser.ElementShouldNotBeVisible(ctx, loc, message) })
}

// ElementTextShouldBe verifies the element text equals expected
func (l *Library) ElementTextShouldBe(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	return l.do(ctx, "element_text_should_be",
		fmt.Sprintf("Text is %q", expected), fmt.Sprintf("Element: %v, Text: %v", loc, expected),
		func() error { return l.browser.ElementTextShouldBe(ctx, loc, expected, message, ignoreCase) })
}

// ElementTextShouldNotBe verifies the element text differs from notExpected
func (l *Library) ElementTextShouldNotBe(ctx context.Context, loc, notExpected, message string, ignoreCase bool) error {
	return l.do(ctx, "element_text_should_not_be",
		fmt.Sprintf("Text is not %q", notExpected), fmt.Sprintf("Element: %v, Text: %v", loc, notExpected),
		func() error { return l.browser.ElementTextShouldNotBe(ctx, loc, notExpected, message, ignoreCase) })
}

// GetElementAttribute returns the attribute value of the element
func (l *Library) GetElementAttribute(ctx context.Context, loc, attribute string) (string, error) {
	return l.getString(ctx, "get_element_attribute", "attribute", "Element: "+loc,
		func() (string, error) { return l.browser.GetElementAttribute(ctx, loc, attribute) })
}

// ElementAttributeValueShouldBe verifies the attribute value of the element
func (l *Library) ElementAttributeValueShouldBe(ctx context.Context, loc, attribute, expected, message string) error {
	return l.do(ctx, "element_attribute_value_should_be",
		fmt.Sprintf("Attribute %q contains %v", attribute, expected),
		fmt.Sprintf("Element: %v, Attribute: %v", loc, expected),
		func() error {
			return l.browser.ElementAttributeValueShouldBe(ctx, loc, attribute, expected, message)
		})
}

// GetHorizontalPosition returns the horizontal position of the element in pixels
func (l *Library) GetHorizontalPosition(ctx context.Context, loc string) (int, error) {
	return l.getInt(ctx, "get_horizontal_position", "Horizontal position", loc,
		func() (int, error) { return l.browser.GetHorizontalPosition(ctx, loc) })
}

// GetVerticalPosition returns the vertical position of the element in pixels
func (l *Library) GetVerticalPosition(ctx context.Context, loc string) (int, error) {
	return l.getInt(ctx, "get_vertical_position", "vertical position", loc,
		func() (int, error) { return l.browser.GetVerticalPosition(ctx, loc) })
}

// GetElementSize returns the width and height of the element
func (l *Library) GetElementSize(ctx context.Context, loc string) (width, height int, err error) {
	_, err = l.base(ctx, "get_element_size", "size", "Element: "+loc, func() (interface{}, error) {
		width, height, err = l.browser.GetElementSize(ctx, loc)
		return []int{width, height}, err
	})
	return width, height, err
}

// CoverElement hides the element behind a blanket of the same size
func (l *Library) CoverElement(ctx context.Context, loc string) error {
	return l.do(ctx, "cover_element", fmt.Sprintf("Element Covered %q", loc), loc,
		func() error { return l.browser.CoverElement(ctx, loc) })
}

// GetValue returns the value attribute of the element
func (l *Library) GetValue(ctx context.Context, loc string) (string, error) {
	return l.getString(ctx, "get_value", "value", loc,
		func() (string, error) { return l.browser.GetValue(ctx, loc) })
}

// GetText returns the visible text of the element
func (l *Library) GetText(ctx context.Context, loc string) (string, error) {
	return l.getString(ctx, "get_text", "Text", loc,
		func() (string, error) { return l.browser.GetText(ctx, loc) })
}

// ClearElementText clears the value of a text input
func (l *Library) ClearElementText(ctx context.Context, loc string) error {
	return l.do(ctx, "clear_element_text", "Text cleared", loc,
		func() error { return l.browser.ClearElementText(ctx, loc) })
}

// ClickButton clicks the button, holding the modifier keys if given
func (l *Library) ClickButton(ctx context.Context, loc, modifier string) error {
	return l.do(ctx, "click_button", fmt.Sprintf("Clicked button %q", loc), loc,
		func() error { return l.browser.ClickButton(ctx, loc, modifier) })
}

// ClickImage clicks the image, holding the modifier keys if given
func (l *Library) ClickImage(ctx context.Context, loc, modifier string) error {
	return l.do(ctx, "click_image", fmt.Sprintf("Clicked image %q", loc), loc,
		func() error { return l.browser.ClickImage(ctx, loc, modifier) })
}

// ClickLink clicks the link, holding the modifier keys if given
func (l *Library) ClickLink(ctx context.Context, loc, modifier string) error {
	return l.do(ctx, "click_link", fmt.Sprintf("Clicked link %q", loc), loc,
		func() error { return l.browser.ClickLink(ctx, loc, modifier) })
}

// ClickElement clicks the element, holding the modifier keys if given
func (l *Library) ClickElement(ctx context.Context, loc, modifier string) error {
	return l.do(ctx, "click_element", fmt.Sprintf("Clicked %q", loc), loc,
		func() error { return l.browser.ClickElement(ctx, loc, modifier) })
}

// ClickElementAtCoordinates clicks at the offset from the element center
func (l *Library) ClickElementAtCoordinates(ctx context.Context, loc string, xOffset, yOffset int) error {
	return l.do(ctx, "click_element_at_coordinates",
		fmt.Sprintf("Clicked %q at X:%v , Y:%v", loc, xOffset, yOffset), loc,
		func() error { return l.browser.ClickElementAtCoordinates(ctx, loc, xOffset, yOffset) })
}

// DoubleClickElement double clicks the element
func (l *Library) DoubleClickElement(ctx context.Context, loc string) error {
	return l.do(ctx, "double_click_element", fmt.Sprintf("Double clicked %q", loc), loc,
		func() error { return l.browser.DoubleClickElement(ctx, loc) })
}

// SetFocusToElement focuses the element
func (l *Library) SetFocusToElement(ctx context.Context, loc string) error {
	return l.do(ctx, "set_focus_to_element", fmt.Sprintf("Element %q is focused", loc), loc,
		func() error { return l.browser.SetFocusToElement(ctx, loc) })
}

// ScrollElementIntoView scrolls the element into the viewport
func (l *Library) ScrollElementIntoView(ctx context.Context, loc string) error {
	return l.do(ctx, "scroll_element_into_view", fmt.Sprintf("Element %q was scrolled into view", loc), loc,
		func() error { return l.browser.ScrollElementIntoView(ctx, loc) })
}

// DragAndDrop drags the element onto the target element
func (l *Library) DragAndDrop(ctx context.Context, loc, target string) error {
	return l.do(ctx, "drag_and_drop",
		fmt.Sprintf("Element %q was dragged to %q", loc, target),
		fmt.Sprintf("Origin: %v, Target: %v", loc, target),
		func() error { return l.browser.DragAndDrop(ctx, loc, target) })
}

// DragAndDropByOffset drags the element by the offset in pixels
func (l *Library) DragAndDropByOffset(ctx context.Context, loc string, xOffset, yOffset int) error {
	return l.do(ctx, "drag_and_drop_by_offset",
		fmt.Sprintf("Element %q was dragged to X:%v , Y:%v", loc, xOffset, yOffset), loc,
		func() error { return l.browser.DragAndDropByOffset(ctx, loc, xOffset, yOffset) })
}

// MouseDown presses the left mouse button on the element
func (l *Library) MouseDown(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_down", fmt.Sprintf("Mouse down on: %q", loc), loc,
		func() error { return l.browser.MouseDown(ctx, loc) })
}

// MouseOut moves the mouse away from the element
func (l *Library) MouseOut(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_out", fmt.Sprintf("Mouse out on: %q", loc), loc,
		func() error { return l.browser.MouseOut(ctx, loc) })
}

// MouseOver moves the mouse over the element
func (l *Library) MouseOver(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_over", fmt.Sprintf("Mouse over on: %q", loc), loc,
		func() error { return l.browser.MouseOver(ctx, loc) })
}

// MouseUp releases the left mouse button on the element
func (l *Library) MouseUp(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_up", fmt.Sprintf("Mouse up on: %q", loc), loc,
		func() error { return l.browser.MouseUp(ctx, loc) })
}

// MouseDownOnLink presses the left mouse button on the link
func (l *Library) MouseDownOnLink(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_down_on_link", fmt.Sprintf("Mouse was pressed on %q", loc), loc,
		func() error { return l.browser.MouseDownOnLink(ctx, loc) })
}

// MouseDownOnImage presses the left mouse button on the image
func (l *Library) MouseDownOnImage(ctx context.Context, loc string) error {
	return l.do(ctx, "mouse_down_on_image", fmt.Sprintf("Mouse was down on image found at %q", loc), loc,
		func() error { return l.browser.MouseDownOnImage(ctx, loc) })
}

// OpenContextMenu right clicks the element
func (l *Library) OpenContextMenu(ctx context.Context, loc string) error {
	return l.do(ctx, "open_context_menu", fmt.Sprintf("Context menu opened on: %q", loc), loc,
		func() error { return l.browser.OpenContextMenu(ctx, loc) })
}

// SimulateEvent dispatches the DOM event on the element
func (l *Library) SimulateEvent(ctx context.Context, loc, event string) error {
	return l.do(ctx, "simulate_event",
		fmt.Sprintf("Event: %q was simulated on %v", event, loc),
		fmt.Sprintf("Element: %v, Event: %v", loc, event),
		func() error { return l.browser.SimulateEvent(ctx, loc, event) })
}

// PressKey sends a key or an escaped \NN key code to the element
func (l *Library) PressKey(ctx context.Context, loc, key string) error {
	return l.do(ctx, "press_key",
		fmt.Sprintf("Key pressed: %q", key), fmt.Sprintf("Locator: %v, Key: %v", loc, key),
		func() error { return l.browser.PressKey(ctx, loc, key) })
}

// PressKeys sends key sequences to the element, or to the active element
// when the locator is empty
func (l *Library) PressKeys(ctx context.Context, loc string, keys ...string) error {
	return l.do(ctx, "press_keys",
		fmt.Sprintf("Keys pressed: %q\non element found at %q", keys, loc), fmt.Sprintf("%q", keys),
		func() error { return l.browser.PressKeys(ctx, loc, keys...) })
}

// GetAllLinks returns the ids of all links on the page
func (l *Library) GetAllLinks(ctx context.Context) ([]string, error) {
	return l.getStrings(ctx, "get_all_links", "links", "",
		func() ([]string, error) { return l.browser.GetAllLinks(ctx) })
}

// PageShouldContainLink verifies the link is found on the page
func (l *Library) PageShouldContainLink(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_link", fmt.Sprintf("Page did contain link in %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainLink(ctx, loc, message)
		}))
}

// PageShouldNotContainLink verifies the link is not found on the page
func (l *Library) PageShouldNotContainLink(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_link", fmt.Sprintf("Page did not contain link in %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainLink(ctx, loc, message)
		}))
}

// PageShouldContainImage verifies the image is found on the page
func (l *Library) PageShouldContainImage(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_image", fmt.Sprintf("Page did contain %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainImage(ctx, loc, message)
		}))
}

// PageShouldNotContainImage verifies the image is not found on the page
func (l *Library) PageShouldNotContainImage(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_image", fmt.Sprintf("Page did not contain %q", loc), loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainImage(ctx, loc, message)
		}))
}

// AddLocationStrategy registers a custom locator strategy implemented in JavaScript
func (l *Library) AddLocationStrategy(ctx context.Context, name, script string, persist bool) error {
	return l.do(ctx, "add_location_strategy", fmt.Sprintf("Strategy '%v' was added", name), name,
		func() error { return l.browser.AddLocationStrategy(name, script, persist) })
}

// RemoveLocationStrategy removes a custom locator strategy
func (l *Library) RemoveLocationStrategy(ctx context.Context, name string) error {
	return l.do(ctx, "remove_location_strategy",
		fmt.Sprintf("Strategy '%v' was removed", name), "Removed "+name,
		func() error { return l.browser.RemoveLocationStrategy(name) })
}
