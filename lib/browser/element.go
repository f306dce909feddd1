package browser

import (
	"context"
	"strings"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
)

// NoLimit disables the element count check of PageShouldContainElement
const NoLimit = -1

// GetWebElement returns the first element matching locator
func (l *Library) GetWebElement(ctx context.Context, loc string) (selenium.WebElement, error) {
	return l.element(ctx, loc, anyTag)
}

// GetWebElements returns all elements matching locator, possibly none
func (l *Library) GetWebElements(ctx context.Context, loc string) ([]selenium.WebElement, error) {
	return l.find(ctx, loc, anyTag)
}

// GetElementCount returns the number of elements matching locator
func (l *Library) GetElementCount(ctx context.Context, loc string) (int, error) {
	elems, err := l.find(ctx, loc, anyTag)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	return len(elems), nil
}

// ElementShouldContain verifies that the text of the element contains expected
func (l *Library) ElementShouldContain(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	text, err := l.GetText(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !contains(text, expected, ignoreCase) {
		return failure(message, "Element '%v' should have contained text '%v' but its text was '%v'.", loc, expected, text)
	}
	l.Infof("Element '%v' contains text '%v'.", loc, expected)
	return nil
}

// ElementShouldNotContain verifies that the text of the element does not contain expected
func (l *Library) ElementShouldNotContain(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	text, err := l.GetText(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if contains(text, expected, ignoreCase) {
		return failure(message, "Element '%v' should not contain text '%v' but it did.", loc, expected)
	}
	l.Infof("Element '%v' does not contain text '%v'.", loc, expected)
	return nil
}

// PageShouldContainElement verifies that locator matches an element, or exactly
// limit elements unless limit is NoLimit
func (l *Library) PageShouldContainElement(ctx context.Context, loc, message string, limit int) error {
	if limit == NoLimit {
		return l.pageShouldContain(ctx, loc, anyTag, message)
	}
	return l.LocatorShouldMatchXTimes(ctx, loc, limit, message)
}

// PageShouldNotContainElement verifies that locator matches no element
func (l *Library) PageShouldNotContainElement(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, anyTag, message)
}

// LocatorShouldMatchXTimes verifies that locator matches exactly count elements
func (l *Library) LocatorShouldMatchXTimes(ctx context.Context, loc string, count int, message string) error {
	elems, err := l.find(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(elems) != count {
		return failure(message, "Locator '%v' should have matched %v but it matched %v.",
			loc, plural(count, "time"), plural(len(elems), "time"))
	}
	l.Infof("Current page contains %v elements matching '%v'.", count, loc)
	return nil
}

func (l *Library) pageShouldContain(ctx context.Context, loc string, spec tagSpec, message string) error {
	elems, err := l.find(ctx, loc, spec)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(elems) == 0 {
		return failure(message, "Page should have contained %v '%v' but did not.", describeElement(spec), loc)
	}
	l.Infof("Current page contains %v '%v'.", describeElement(spec), loc)
	return nil
}

func (l *Library) pageShouldNotContain(ctx context.Context, loc string, spec tagSpec, message string) error {
	elems, err := l.find(ctx, loc, spec)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(elems) != 0 {
		return failure(message, "Page should not have contained %v '%v'.", describeElement(spec), loc)
	}
	l.Infof("Current page does not contain %v '%v'.", describeElement(spec), loc)
	return nil
}

func describeElement(spec tagSpec) string {
	if spec.tag == "" {
		return "element"
	}
	return describeTag(spec)
}

// PageShouldContain verifies that text appears on the page or in any of its frames
func (l *Library) PageShouldContain(ctx context.Context, text string) error {
	found, err := l.pageContainsText(ctx, text)
	if err != nil {
		return trace.Wrap(err)
	}
	if !found {
		return trace.CompareFailed("Page should have contained text '%v' but did not.", text)
	}
	l.Infof("Current page contains text '%v'.", text)
	return nil
}

// PageShouldNotContain verifies that text appears neither on the page nor in its frames
func (l *Library) PageShouldNotContain(ctx context.Context, text string) error {
	found, err := l.pageContainsText(ctx, text)
	if err != nil {
		return trace.Wrap(err)
	}
	if found {
		return trace.CompareFailed("Page should not have contained text '%v'.", text)
	}
	l.Infof("Current page does not contain text '%v'.", text)
	return nil
}

// pageContainsText searches the top level document, then each frame in it.
// The driver is left in the top level document.
func (l *Library) pageContainsText(ctx context.Context, text string) (bool, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return false, trace.Wrap(err)
	}
	if err := wd.SwitchFrame(nil); err != nil {
		return false, trace.Wrap(err)
	}
	found, err := textPresent(wd, text)
	if err != nil || found {
		return found, trace.Wrap(err)
	}
	frames, err := wd.FindElements(selenium.ByXPATH, "//frame|//iframe")
	if err != nil {
		return false, trace.Wrap(err)
	}
	defer wd.SwitchFrame(nil)
	for _, frame := range frames {
		if err := wd.SwitchFrame(frame); err != nil {
			return false, trace.Wrap(err)
		}
		found, err := textPresent(wd, text)
		if err != nil || found {
			return found, trace.Wrap(err)
		}
		if err := wd.SwitchFrame(nil); err != nil {
			return false, trace.Wrap(err)
		}
	}
	return false, nil
}

func textPresent(wd selenium.WebDriver, text string) (bool, error) {
	elems, err := wd.FindElements(selenium.ByXPATH, "//*[contains(., "+xpathLiteral(text)+")]")
	if err != nil {
		return false, trace.Wrap(err)
	}
	return len(elems) > 0, nil
}

// AssignIDToElement sets the id attribute of the element
func (l *Library) AssignIDToElement(ctx context.Context, loc, id string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	l.Infof("Assigning temporary id '%v' to element '%v'.", id, loc)
	_, err = l.executeScript(ctx, "arguments[0].id = arguments[1];", elem, id)
	return trace.Wrap(err)
}

// ElementShouldBeDisabled verifies that the element is disabled
func (l *Library) ElementShouldBeDisabled(ctx context.Context, loc string) error {
	enabled, err := l.isEnabled(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if enabled {
		return trace.CompareFailed("Element '%v' is enabled.", loc)
	}
	return nil
}

// ElementShouldBeEnabled verifies that the element is enabled
func (l *Library) ElementShouldBeEnabled(ctx context.Context, loc string) error {
	enabled, err := l.isEnabled(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !enabled {
		return trace.CompareFailed("Element '%v' is disabled.", loc)
	}
	return nil
}

// isEnabled treats form elements and elements marked readonly as disabled
func (l *Library) isEnabled(ctx context.Context, loc string) (bool, error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return false, trace.Wrap(err)
	}
	enabled, err := elem.IsEnabled()
	if err != nil || !enabled {
		return false, trace.Wrap(err)
	}
	readonly, err := elem.GetAttribute("readonly")
	if err == nil && readonly != "" && readonly != "false" {
		return false, nil
	}
	return true, nil
}

// ElementShouldBeFocused verifies that the element is the active element
func (l *Library) ElementShouldBeFocused(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	focused, err := l.executeScript(ctx, "return arguments[0] === document.activeElement;", elem)
	if err != nil {
		return trace.Wrap(err)
	}
	if focused != true {
		return trace.CompareFailed("Element '%v' does not have focus.", loc)
	}
	return nil
}

// ElementShouldBeVisible verifies that the element is displayed
func (l *Library) ElementShouldBeVisible(ctx context.Context, loc, message string) error {
	visible, err := l.isVisible(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !visible {
		return failure(message, "The element '%v' should be visible, but it is not.", loc)
	}
	l.Infof("Element '%v' is displayed.", loc)
	return nil
}

// ElementShouldNotBeVisible verifies that the element is not displayed
func (l *Library) ElementShouldNotBeVisible(ctx context.Context, loc, message string) error {
	visible, err := l.isVisible(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if visible {
		return failure(message, "The element '%v' should not be visible, but it is.", loc)
	}
	l.Infof("Element '%v' is not displayed.", loc)
	return nil
}

func (l *Library) isVisible(ctx context.Context, loc string) (bool, error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return false, trace.Wrap(err)
	}
	visible, err := elem.IsDisplayed()
	return visible, trace.Wrap(err)
}

// ElementTextShouldBe verifies that the text of the element is exactly expected
func (l *Library) ElementTextShouldBe(ctx context.Context, loc, expected, message string, ignoreCase bool) error {
	text, err := l.GetText(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !equal(text, expected, ignoreCase) {
		return failure(message, "The text of element '%v' should have been '%v' but it was '%v'.", loc, expected, text)
	}
	return nil
}

// ElementTextShouldNotBe verifies that the text of the element is not expected
func (l *Library) ElementTextShouldNotBe(ctx context.Context, loc, notExpected, message string, ignoreCase bool) error {
	text, err := l.GetText(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if equal(text, notExpected, ignoreCase) {
		return failure(message, "The text of element '%v' was not supposed to be '%v'.", loc, notExpected)
	}
	return nil
}

// GetElementAttribute returns the value of the attribute of the element
func (l *Library) GetElementAttribute(ctx context.Context, loc, attribute string) (string, error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return "", trace.Wrap(err)
	}
	value, err := elem.GetAttribute(attribute)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return value, nil
}

// ElementAttributeValueShouldBe verifies the value of the attribute of the element
func (l *Library) ElementAttributeValueShouldBe(ctx context.Context, loc, attribute, expected, message string) error {
	value, err := l.GetElementAttribute(ctx, loc, attribute)
	if err != nil {
		return trace.Wrap(err)
	}
	if value != expected {
		return failure(message, "Element '%v' attribute should have value '%v' but its value was '%v'.", loc, expected, value)
	}
	l.Infof("Element '%v' attribute '%v' contains value '%v'.", loc, attribute, expected)
	return nil
}

// GetHorizontalPosition returns the x coordinate of the element top left corner
func (l *Library) GetHorizontalPosition(ctx context.Context, loc string) (int, error) {
	point, err := l.location(ctx, loc)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	return point.X, nil
}

// GetVerticalPosition returns the y coordinate of the element top left corner
func (l *Library) GetVerticalPosition(ctx context.Context, loc string) (int, error) {
	point, err := l.location(ctx, loc)
	if err != nil {
		return 0, trace.Wrap(err)
	}
	return point.Y, nil
}

func (l *Library) location(ctx context.Context, loc string) (*selenium.Point, error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	point, err := elem.Location()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return point, nil
}

// GetElementSize returns the width and height of the element
func (l *Library) GetElementSize(ctx context.Context, loc string) (width, height int, err error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return 0, 0, trace.Wrap(err)
	}
	size, err := elem.Size()
	if err != nil {
		return 0, 0, trace.Wrap(err)
	}
	return size.Width, size.Height, nil
}

const coverScript = `
var old = arguments[0];
var cover = document.createElement('div');
cover.setAttribute('name', 'covered');
cover.style.backgroundColor = 'blue';
cover.style.zIndex = '999';
cover.style.top = old.offsetTop + 'px';
cover.style.left = old.offsetLeft + 'px';
cover.style.height = old.offsetHeight + 'px';
cover.style.width = old.offsetWidth + 'px';
old.parentNode.insertBefore(cover, old);
old.remove();
cover.parentNode.style.overflow = 'hidden';
`

// CoverElement replaces every element matching locator with a blue div of the same size
func (l *Library) CoverElement(ctx context.Context, loc string) error {
	elems, err := l.find(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(elems) == 0 {
		return notFound(loc, anyTag)
	}
	for _, elem := range elems {
		if _, err := l.executeScript(ctx, coverScript, elem); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// GetValue returns the value attribute of the element
func (l *Library) GetValue(ctx context.Context, loc string) (string, error) {
	return l.GetElementAttribute(ctx, loc, "value")
}

// GetText returns the visible text of the element
func (l *Library) GetText(ctx context.Context, loc string) (string, error) {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return "", trace.Wrap(err)
	}
	text, err := elem.Text()
	if err != nil {
		return "", trace.Wrap(err)
	}
	return text, nil
}

// ClearElementText clears the text of a text entry element
func (l *Library) ClearElementText(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(elem.Clear())
}

// ClickButton clicks an input button or a button element
func (l *Library) ClickButton(ctx context.Context, loc, modifier string) error {
	l.WithField("locator", loc).Info("Clicking button.")
	elem, err := l.firstOf(ctx, loc, inputButton, buttonTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(l.clickWithModifier(ctx, elem, modifier))
}

// ClickImage clicks an image or an image input
func (l *Library) ClickImage(ctx context.Context, loc, modifier string) error {
	l.WithField("locator", loc).Info("Clicking image.")
	elem, err := l.firstOf(ctx, loc, imageTag, imageInputTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(l.clickWithModifier(ctx, elem, modifier))
}

// ClickLink clicks a link
func (l *Library) ClickLink(ctx context.Context, loc, modifier string) error {
	l.WithField("locator", loc).Info("Clicking link.")
	elem, err := l.element(ctx, loc, linkTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(l.clickWithModifier(ctx, elem, modifier))
}

// ClickElement clicks an element, holding the modifier keys given as CTRL+SHIFT
func (l *Library) ClickElement(ctx context.Context, loc, modifier string) error {
	l.WithField("locator", loc).Info("Clicking element.")
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(l.clickWithModifier(ctx, elem, modifier))
}

func (l *Library) clickWithModifier(ctx context.Context, elem selenium.WebElement, modifier string) error {
	if strings.TrimSpace(modifier) == "" {
		return trace.Wrap(elem.Click())
	}
	keys, err := parseModifiers(modifier)
	if err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	l.WithFields(logrus.Fields{"modifier": modifier}).Debug("Clicking with modifier.")
	for _, key := range keys {
		if err := wd.KeyDown(key); err != nil {
			return trace.Wrap(err)
		}
	}
	clickErr := elem.Click()
	for _, key := range keys {
		if err := wd.KeyUp(key); err != nil && clickErr == nil {
			clickErr = err
		}
	}
	return trace.Wrap(clickErr)
}

// ClickElementAtCoordinates clicks the element at an offset from its center
func (l *Library) ClickElementAtCoordinates(ctx context.Context, loc string, xOffset, yOffset int) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, xOffset, yOffset); err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.Click(selenium.LeftButton))
}

// DoubleClickElement double clicks the element
func (l *Library) DoubleClickElement(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if err := moveToCenter(elem, 0, 0); err != nil {
		return trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.DoubleClick())
}

// SetFocusToElement focuses the element
func (l *Library) SetFocusToElement(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = l.executeScript(ctx, "arguments[0].focus();", elem)
	return trace.Wrap(err)
}

// ScrollElementIntoView scrolls the page until the element is visible
func (l *Library) ScrollElementIntoView(ctx context.Context, loc string) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	_, err = elem.LocationInView()
	if err != nil {
		_, err = l.executeScript(ctx, "arguments[0].scrollIntoView(true);", elem)
	}
	return trace.Wrap(err)
}

// GetAllLinks returns the ids of all links on the page, empty for links without one
func (l *Library) GetAllLinks(ctx context.Context) ([]string, error) {
	links, err := l.find(ctx, "tag:a", linkTag)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	ids := make([]string, 0, len(links))
	for _, link := range links {
		id, err := link.GetAttribute("id")
		if err != nil {
			id = ""
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// PageShouldContainLink verifies that the page contains the link
func (l *Library) PageShouldContainLink(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, linkTag, message)
}

// PageShouldNotContainLink verifies that the page does not contain the link
func (l *Library) PageShouldNotContainLink(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, linkTag, message)
}

// PageShouldContainImage verifies that the page contains the image
func (l *Library) PageShouldContainImage(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, imageTag, message)
}

// PageShouldNotContainImage verifies that the page does not contain the image
func (l *Library) PageShouldNotContainImage(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, imageTag, message)
}
