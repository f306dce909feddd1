package keywords

import (
	"context"
	"fmt"
)

// SubmitForm submits the form matching the locator, or the first form of the page
func (l *Library) SubmitForm(ctx context.Context, loc string) error {
	return l.do(ctx, "submit_form", "Form submitted", loc,
		func() error { return l.browser.SubmitForm(ctx, loc) })
}

// CheckboxShouldBeSelected verifies the checkbox is checked
func (l *Library) CheckboxShouldBeSelected(ctx context.Context, loc string) error {
	return l.do(ctx, "checkbox_should_be_selected", fmt.Sprintf("Checked box %v is selected", loc), loc,
		func() error { return l.browser.CheckboxShouldBeSelected(ctx, loc) })
}

// CheckboxShouldNotBeSelected verifies the checkbox is not checked
func (l *Library) CheckboxShouldNotBeSelected(ctx context.Context, loc string) error {
	return l.do(ctx, "checkbox_should_not_be_selected", fmt.Sprintf("Checked box %v is not selected", loc), loc,
		func() error { return l.browser.CheckboxShouldNotBeSelected(ctx, loc) })
}

// PageShouldContainCheckbox verifies the checkbox is found on the page
func (l *Library) PageShouldContainCheckbox(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_checkbox", "Page contains checkbox "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainCheckbox(ctx, loc, message)
		}))
}

// PageShouldNotContainCheckbox verifies the checkbox is not found on the page
func (l *Library) PageShouldNotContainCheckbox(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_checkbox", "Page does not contain checkbox "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainCheckbox(ctx, loc, message)
		}))
}

// SelectCheckbox checks the checkbox unless it is already checked
func (l *Library) SelectCheckbox(ctx context.Context, loc string) error {
	return l.do(ctx, "select_checkbox", "Checkbox selected", loc,
		func() error { return l.browser.SelectCheckbox(ctx, loc) })
}

// UnselectCheckbox unchecks the checkbox if it is checked
func (l *Library) UnselectCheckbox(ctx context.Context, loc string) error {
	return l.do(ctx, "unselect_checkbox", "Checkbox unselected", loc,
		func() error { return l.browser.UnselectCheckbox(ctx, loc) })
}

// PageShouldContainRadioButton verifies the radio button is found on the page
func (l *Library) PageShouldContainRadioButton(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_radio_button", "Page contains radio button "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainRadioButton(ctx, loc, message)
		}))
}

// PageShouldNotContainRadioButton verifies the radio button is not found on the page
func (l *Library) PageShouldNotContainRadioButton(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_radio_button", "Page does not contain radio button "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainRadioButton(ctx, loc, message)
		}))
}

// RadioButtonShouldBeSetTo verifies the selected radio button of the group has value
func (l *Library) RadioButtonShouldBeSetTo(ctx context.Context, group, value string) error {
	return l.do(ctx, "radio_button_should_be_set_to", fmt.Sprintf("%v was set to %v", group, value), value,
		func() error { return l.browser.RadioButtonShouldBeSetTo(ctx, group, value) })
}

// RadioButtonShouldNotBeSelected verifies no radio button of the group is selected
func (l *Library) RadioButtonShouldNotBeSelected(ctx context.Context, group string) error {
	return l.do(ctx, "radio_button_should_not_be_selected", group+" was not selected", group,
		func() error { return l.browser.RadioButtonShouldNotBeSelected(ctx, group) })
}

// SelectRadioButton selects the radio button of the group with value
func (l *Library) SelectRadioButton(ctx context.Context, group, value string) error {
	return l.do(ctx, "select_radio_button", fmt.Sprintf("%v was set to %v", group, value), value,
		func() error { return l.browser.SelectRadioButton(ctx, group, value) })
}

// ChooseFile types the path of a local file into the file input
func (l *Library) ChooseFile(ctx context.Context, loc, path string) error {
	return l.do(ctx, "choose_file", fmt.Sprintf("File %v was uploaded", path), loc,
		func() error { return l.browser.ChooseFile(ctx, loc, path) })
}

// InputPassword types the password into the text field. The password is
// kept out of reports and logs.
func (l *Library) InputPassword(ctx context.Context, loc, password string, clear bool) error {
	return l.do(ctx, "input_password", "Typed password to "+loc, loc,
		func() error { return l.browser.InputPassword(ctx, loc, password, clear) })
}

// InputText types the text into the text field, clearing it first with clear
func (l *Library) InputText(ctx context.Context, loc, text string, clear bool) error {
	return l.do(ctx, "input_text", fmt.Sprintf("Typed %v to %v", text, loc), text,
		func() error { return l.browser.InputText(ctx, loc, text, clear) })
}

// PageShouldContainTextfield verifies the text field is found on the page
func (l *Library) PageShouldContainTextfield(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_textfield", "Page contains TextField "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainTextfield(ctx, loc, message)
		}))
}

// PageShouldNotContainTextfield verifies the text field is not found on the page
func (l *Library) PageShouldNotContainTextfield(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_textfield", "Page does not contain TextField "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainTextfield(ctx, loc, message)
		}))
}

// TextfieldShouldContain verifies the text field value contains expected
func (l *Library) TextfieldShouldContain(ctx context.Context, loc, expected, message string) error {
	return l.do(ctx, "textfield_should_contain", fmt.Sprintf("TextField %v contains %v", loc, expected), expected,
		func() error { return l.browser.TextfieldShouldContain(ctx, loc, expected, message) })
}

// TextfieldValueShouldBe verifies the text field value equals expected
func (l *Library) TextfieldValueShouldBe(ctx context.Context, loc, expected, message string) error {
	return l.do(ctx, "textfield_value_should_be", fmt.Sprintf("TextField %v value is %v", loc, expected), expected,
		func() error { return l.browser.TextfieldValueShouldBe(ctx, loc, expected, message) })
}

// TextareaShouldContain verifies the text area value contains expected
func (l *Library) TextareaShouldContain(ctx context.Context, loc, expected, message string) error {
	return l.do(ctx, "textarea_should_contain", fmt.Sprintf("TextArea %v contains %v", loc, expected), expected,
		func() error { return l.browser.TextareaShouldContain(ctx, loc, expected, message) })
}

// TextareaValueShouldBe verifies the text area value equals expected
func (l *Library) TextareaValueShouldBe(ctx context.Context, loc, expected, message string) error {
	return l.do(ctx, "textarea_value_should_be", fmt.Sprintf("TextArea %v value is %v", loc, expected), expected,
		func() error { return l.browser.TextareaValueShouldBe(ctx, loc, expected, message) })
}

// PageShouldContainButton verifies the button is found on the page
func (l *Library) PageShouldContainButton(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_button", "Page contains button "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainButton(ctx, loc, message)
		}))
}

// PageShouldNotContainButton verifies the button is not found on the page
func (l *Library) PageShouldNotContainButton(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_button", "Page does not contain button "+loc, loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainButton(ctx, loc, message)
		}))
}
