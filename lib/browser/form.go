package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/testproject-io/robotkeywords/lib/system"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// SubmitForm submits the form, the first form on the page when loc is empty
func (l *Library) SubmitForm(ctx context.Context, loc string) error {
	if strings.TrimSpace(loc) == "" {
		loc = "tag:form"
	}
	l.Infof("Submitting form '%v'.", loc)
	form, err := l.element(ctx, loc, formTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(form.Submit())
}

// CheckboxShouldBeSelected verifies that the checkbox is checked
func (l *Library) CheckboxShouldBeSelected(ctx context.Context, loc string) error {
	selected, err := l.isSelected(ctx, loc, checkboxTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if !selected {
		return trace.CompareFailed("Checkbox '%v' should have been selected but was not.", loc)
	}
	return nil
}

// CheckboxShouldNotBeSelected verifies that the checkbox is not checked
func (l *Library) CheckboxShouldNotBeSelected(ctx context.Context, loc string) error {
	selected, err := l.isSelected(ctx, loc, checkboxTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if selected {
		return trace.CompareFailed("Checkbox '%v' should not have been selected.", loc)
	}
	return nil
}

func (l *Library) isSelected(ctx context.Context, loc string, spec tagSpec) (bool, error) {
	elem, err := l.element(ctx, loc, spec)
	if err != nil {
		return false, trace.Wrap(err)
	}
	selected, err := elem.IsSelected()
	return selected, trace.Wrap(err)
}

// PageShouldContainCheckbox verifies that the page contains the checkbox
func (l *Library) PageShouldContainCheckbox(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, checkboxTag, message)
}

// PageShouldNotContainCheckbox verifies that the page does not contain the checkbox
func (l *Library) PageShouldNotContainCheckbox(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, checkboxTag, message)
}

// SelectCheckbox checks the checkbox unless it is already checked
func (l *Library) SelectCheckbox(ctx context.Context, loc string) error {
	return l.setCheckbox(ctx, loc, true)
}

// UnselectCheckbox unchecks the checkbox unless it is already unchecked
func (l *Library) UnselectCheckbox(ctx context.Context, loc string) error {
	return l.setCheckbox(ctx, loc, false)
}

func (l *Library) setCheckbox(ctx context.Context, loc string, checked bool) error {
	elem, err := l.element(ctx, loc, checkboxTag)
	if err != nil {
		return trace.Wrap(err)
	}
	selected, err := elem.IsSelected()
	if err != nil {
		return trace.Wrap(err)
	}
	if selected == checked {
		return nil
	}
	return trace.Wrap(elem.Click())
}

// PageShouldContainRadioButton verifies that the page contains the radio button
func (l *Library) PageShouldContainRadioButton(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, radioTag, message)
}

// PageShouldNotContainRadioButton verifies that the page does not contain the radio button
func (l *Library) PageShouldNotContainRadioButton(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, radioTag, message)
}

func radioGroupXPath(group string) string {
	return fmt.Sprintf("//input[@type='radio' and @name=%v]", xpathLiteral(group))
}

func radioXPath(group, value string) string {
	return fmt.Sprintf("//input[@type='radio' and @name=%v and (@value=%v or @id=%v)]",
		xpathLiteral(group), xpathLiteral(value), xpathLiteral(value))
}

// RadioButtonShouldBeSetTo verifies that the selected radio button of the group has value
func (l *Library) RadioButtonShouldBeSetTo(ctx context.Context, group, value string) error {
	selected, err := l.selectedRadio(ctx, group)
	if err != nil {
		return trace.Wrap(err)
	}
	if selected == nil {
		return trace.CompareFailed("Selection of radio button '%v' should have been '%v' but it was 'None'.", group, value)
	}
	actual, err := selected.GetAttribute("value")
	if err != nil {
		return trace.Wrap(err)
	}
	if actual != value {
		return trace.CompareFailed("Selection of radio button '%v' should have been '%v' but it was '%v'.", group, value, actual)
	}
	return nil
}

// RadioButtonShouldNotBeSelected verifies that no radio button of the group is selected
func (l *Library) RadioButtonShouldNotBeSelected(ctx context.Context, group string) error {
	selected, err := l.selectedRadio(ctx, group)
	if err != nil {
		return trace.Wrap(err)
	}
	if selected != nil {
		actual, _ := selected.GetAttribute("value")
		return trace.CompareFailed("Radio button group '%v' should not have had selection, but '%v' was selected.", group, actual)
	}
	return nil
}

func (l *Library) selectedRadio(ctx context.Context, group string) (selenium.WebElement, error) {
	buttons, err := l.find(ctx, "xpath:"+radioGroupXPath(group), anyTag)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	for _, button := range buttons {
		selected, err := button.IsSelected()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if selected {
			return button, nil
		}
	}
	return nil, nil
}

// SelectRadioButton selects the radio button of the group with the given value or id
func (l *Library) SelectRadioButton(ctx context.Context, group, value string) error {
	l.Infof("Selecting '%v' from radio button '%v'.", value, group)
	elems, err := l.find(ctx, "xpath:"+radioXPath(group, value), anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(elems) == 0 {
		return trace.NotFound("No radio button with name '%v' and value '%v' found.", group, value)
	}
	selected, err := elems[0].IsSelected()
	if err != nil {
		return trace.Wrap(err)
	}
	if selected {
		return nil
	}
	return trace.Wrap(elems[0].Click())
}

// ChooseFile types the path of a local file into the file input
func (l *Library) ChooseFile(ctx context.Context, loc, path string) error {
	ok, err := system.IsFile(path)
	if err != nil {
		return trace.Wrap(err)
	}
	if !ok {
		return trace.NotFound("file %q does not exist", path)
	}
	l.Infof("Sending %v to browser.", path)
	elem, err := l.element(ctx, loc, fileUploadTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(elem.SendKeys(path))
}

// InputPassword types the password into the text field without logging it
func (l *Library) InputPassword(ctx context.Context, loc, password string, clear bool) error {
	l.Infof("Typing password into text field '%v'.", loc)
	return l.inputText(ctx, loc, password, clear)
}

// InputText types text into the text field
func (l *Library) InputText(ctx context.Context, loc, text string, clear bool) error {
	l.Infof("Typing text '%v' into text field '%v'.", text, loc)
	return l.inputText(ctx, loc, text, clear)
}

func (l *Library) inputText(ctx context.Context, loc, text string, clear bool) error {
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if clear {
		if err := elem.Clear(); err != nil {
			return trace.Wrap(err)
		}
	}
	return trace.Wrap(elem.SendKeys(text))
}

// PageShouldContainTextfield verifies that the page contains the text field
func (l *Library) PageShouldContainTextfield(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, textFieldTag, message)
}

// PageShouldNotContainTextfield verifies that the page does not contain the text field
func (l *Library) PageShouldNotContainTextfield(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, textFieldTag, message)
}

// TextfieldShouldContain verifies that the value of the text field contains expected
func (l *Library) TextfieldShouldContain(ctx context.Context, loc, expected, message string) error {
	actual, err := l.fieldValue(ctx, loc, textFieldTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if !strings.Contains(actual, expected) {
		return failure(message, "Text field '%v' should have contained text '%v' but it contained '%v'.", loc, expected, actual)
	}
	return nil
}

// TextfieldValueShouldBe verifies the exact value of the text field
func (l *Library) TextfieldValueShouldBe(ctx context.Context, loc, expected, message string) error {
	actual, err := l.fieldValue(ctx, loc, textFieldTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if actual != expected {
		return failure(message, "Value of text field '%v' should have been '%v' but was '%v'.", loc, expected, actual)
	}
	return nil
}

// TextareaShouldContain verifies that the value of the text area contains expected
func (l *Library) TextareaShouldContain(ctx context.Context, loc, expected, message string) error {
	actual, err := l.fieldValue(ctx, loc, textareaTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if !strings.Contains(actual, expected) {
		return failure(message, "Text area '%v' should have contained text '%v' but it had '%v'.", loc, expected, actual)
	}
	return nil
}

// TextareaValueShouldBe verifies the exact value of the text area
func (l *Library) TextareaValueShouldBe(ctx context.Context, loc, expected, message string) error {
	actual, err := l.fieldValue(ctx, loc, textareaTag)
	if err != nil {
		return trace.Wrap(err)
	}
	if actual != expected {
		return failure(message, "Text area '%v' should have had text '%v' but it had '%v'.", loc, expected, actual)
	}
	return nil
}

func (l *Library) fieldValue(ctx context.Context, loc string, spec tagSpec) (string, error) {
	elem, err := l.element(ctx, loc, spec)
	if err != nil {
		return "", trace.Wrap(err)
	}
	value, err := elem.GetAttribute("value")
	return value, trace.Wrap(err)
}

// PageShouldContainButton verifies that the page contains an input button or a button element
func (l *Library) PageShouldContainButton(ctx context.Context, loc, message string) error {
	for _, spec := range []tagSpec{inputButton, buttonTag} {
		elems, err := l.find(ctx, loc, spec)
		if err != nil {
			return trace.Wrap(err)
		}
		if len(elems) > 0 {
			return nil
		}
	}
	return failure(message, "Page should have contained button '%v' but did not.", loc)
}

// PageShouldNotContainButton verifies that the page contains neither input buttons nor button elements matching loc
func (l *Library) PageShouldNotContainButton(ctx context.Context, loc, message string) error {
	for _, spec := range []tagSpec{inputButton, buttonTag} {
		if err := l.pageShouldNotContain(ctx, loc, spec, message); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}
