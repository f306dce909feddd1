package browser

import (
	"context"
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// option is a single option of a select list
type option struct {
	elem  selenium.WebElement
	label string
	value string
}

func (l *Library) listOptions(ctx context.Context, loc string) (selenium.WebElement, []option, error) {
	list, err := l.element(ctx, loc, listTag)
	if err != nil {
		return nil, nil, trace.Wrap(err)
	}
	elems, err := list.FindElements(selenium.ByTagName, "option")
	if err != nil {
		return nil, nil, trace.Wrap(err)
	}
	options := make([]option, 0, len(elems))
	for _, elem := range elems {
		label, err := elem.Text()
		if err != nil {
			return nil, nil, trace.Wrap(err)
		}
		value, err := elem.GetAttribute("value")
		if err != nil {
			value = label
		}
		options = append(options, option{elem: elem, label: label, value: value})
	}
	return list, options, nil
}

func (l *Library) selectedOptions(ctx context.Context, loc string) ([]option, error) {
	_, options, err := l.listOptions(ctx, loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	var selected []option
	for _, opt := range options {
		ok, err := opt.elem.IsSelected()
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if ok {
			selected = append(selected, opt)
		}
	}
	return selected, nil
}

func isMultiple(list selenium.WebElement) bool {
	multiple, err := list.GetAttribute("multiple")
	return err == nil && multiple != "" && multiple != "false"
}

func setSelected(opt option, selected bool) error {
	current, err := opt.elem.IsSelected()
	if err != nil {
		return trace.Wrap(err)
	}
	if current == selected {
		return nil
	}
	return trace.Wrap(opt.elem.Click())
}

// selectBy selects or unselects the options matching each of items
func (l *Library) selectBy(ctx context.Context, loc string, items []string, selected bool,
	what string, match func(int, option, string) bool) error {
	if len(items) == 0 {
		return trace.BadParameter("no %vs given", what)
	}
	list, options, err := l.listOptions(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !selected && !isMultiple(list) {
		return trace.BadParameter("Un-selecting options works only with multi-selection lists.")
	}
	for _, item := range items {
		var found bool
		for i, opt := range options {
			if !match(i, opt, item) {
				continue
			}
			found = true
			if err := setSelected(opt, selected); err != nil {
				return trace.Wrap(err)
			}
			if selected && !isMultiple(list) {
				break
			}
		}
		if !found {
			return trace.NotFound("Cannot locate option with %v '%v' in list '%v'.", what, item, loc)
		}
	}
	return nil
}

func matchValue(_ int, opt option, value string) bool { return opt.value == value }

func matchLabel(_ int, opt option, label string) bool { return opt.label == label }

func matchIndex(i int, _ option, index string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(index))
	return err == nil && n == i
}

// SelectFromListByValue selects the options with the given values
func (l *Library) SelectFromListByValue(ctx context.Context, loc string, values ...string) error {
	l.Infof("Selecting options from selection list '%v' by value %v.", loc, strings.Join(values, ", "))
	return l.selectBy(ctx, loc, values, true, "value", matchValue)
}

// SelectFromListByIndex selects the options at the given zero based indexes
func (l *Library) SelectFromListByIndex(ctx context.Context, loc string, indexes ...string) error {
	l.Infof("Selecting options from selection list '%v' by index %v.", loc, strings.Join(indexes, ", "))
	return l.selectBy(ctx, loc, indexes, true, "index", matchIndex)
}

// SelectFromListByLabel selects the options with the given labels
func (l *Library) SelectFromListByLabel(ctx context.Context, loc string, labels ...string) error {
	l.Infof("Selecting options from selection list '%v' by label %v.", loc, strings.Join(labels, ", "))
	return l.selectBy(ctx, loc, labels, true, "label", matchLabel)
}

// UnselectFromListByValue unselects the options with the given values
func (l *Library) UnselectFromListByValue(ctx context.Context, loc string, values ...string) error {
	return l.selectBy(ctx, loc, values, false, "value", matchValue)
}

// UnselectFromListByIndex unselects the options at the given indexes
func (l *Library) UnselectFromListByIndex(ctx context.Context, loc string, indexes ...string) error {
	return l.selectBy(ctx, loc, indexes, false, "index", matchIndex)
}

// UnselectFromListByLabel unselects the options with the given labels
func (l *Library) UnselectFromListByLabel(ctx context.Context, loc string, labels ...string) error {
	return l.selectBy(ctx, loc, labels, false, "label", matchLabel)
}

// SelectAllFromList selects every option of a multi-selection list
func (l *Library) SelectAllFromList(ctx context.Context, loc string) error {
	return l.setAll(ctx, loc, true)
}

// UnselectAllFromList unselects every option of a multi-selection list
func (l *Library) UnselectAllFromList(ctx context.Context, loc string) error {
	return l.setAll(ctx, loc, false)
}

func (l *Library) setAll(ctx context.Context, loc string, selected bool) error {
	list, options, err := l.listOptions(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if !isMultiple(list) {
		if selected {
			return trace.BadParameter("'Select All From List' works only with multi-selection lists.")
		}
		return trace.BadParameter("Un-selecting options works only with multi-selection lists.")
	}
	for _, opt := range options {
		if err := setSelected(opt, selected); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}

// GetSelectedListLabel returns the label of the first selected option
func (l *Library) GetSelectedListLabel(ctx context.Context, loc string) (string, error) {
	selected, err := l.requireSelection(ctx, loc)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return selected[0].label, nil
}

// GetSelectedListLabels returns the labels of all selected options
func (l *Library) GetSelectedListLabels(ctx context.Context, loc string) ([]string, error) {
	selected, err := l.requireSelection(ctx, loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return labels(selected), nil
}

// GetSelectedListValue returns the value of the first selected option
func (l *Library) GetSelectedListValue(ctx context.Context, loc string) (string, error) {
	selected, err := l.requireSelection(ctx, loc)
	if err != nil {
		return "", trace.Wrap(err)
	}
	return selected[0].value, nil
}

// GetSelectedListValues returns the values of all selected options
func (l *Library) GetSelectedListValues(ctx context.Context, loc string) ([]string, error) {
	selected, err := l.requireSelection(ctx, loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return values(selected), nil
}

func (l *Library) requireSelection(ctx context.Context, loc string) ([]option, error) {
	selected, err := l.selectedOptions(ctx, loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if len(selected) == 0 {
		return nil, trace.NotFound("Selection list '%v' has no selected options.", loc)
	}
	return selected, nil
}

// GetListItems returns the labels, or the values, of all options of the list
func (l *Library) GetListItems(ctx context.Context, loc string, useValues bool) ([]string, error) {
	_, options, err := l.listOptions(ctx, loc)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if useValues {
		return values(options), nil
	}
	return labels(options), nil
}

// ListSelectionShouldBe verifies that exactly the expected options are selected.
// Options are matched by label or value.
func (l *Library) ListSelectionShouldBe(ctx context.Context, loc string, expected ...string) error {
	if len(expected) == 0 {
		return l.ListShouldHaveNoSelections(ctx, loc)
	}
	selected, err := l.selectedOptions(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	matches := len(selected) == len(expected)
	if matches {
		for _, item := range expected {
			var found bool
			for _, opt := range selected {
				if opt.label == item || opt.value == item {
					found = true
					break
				}
			}
			if !found {
				matches = false
				break
			}
		}
	}
	if !matches {
		return trace.CompareFailed("List '%v' should have had selection [ %v ] but selection was [ %v ].",
			loc, strings.Join(expected, " | "), describeOptions(selected))
	}
	return nil
}

// ListShouldHaveNoSelections verifies that no option of the list is selected
func (l *Library) ListShouldHaveNoSelections(ctx context.Context, loc string) error {
	selected, err := l.selectedOptions(ctx, loc)
	if err != nil {
		return trace.Wrap(err)
	}
	if len(selected) != 0 {
		return trace.CompareFailed("List '%v' should have had no selection but selection was [ %v ].",
			loc, describeOptions(selected))
	}
	return nil
}

// PageShouldContainList verifies that the page contains the select list
func (l *Library) PageShouldContainList(ctx context.Context, loc, message string) error {
	return l.pageShouldContain(ctx, loc, listTag, message)
}

// PageShouldNotContainList verifies that the page does not contain the select list
func (l *Library) PageShouldNotContainList(ctx context.Context, loc, message string) error {
	return l.pageShouldNotContain(ctx, loc, listTag, message)
}

func labels(options []option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.label)
	}
	return out
}

func values(options []option) []string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.value)
	}
	return out
}

func describeOptions(options []option) string {
	out := make([]string, 0, len(options))
	for _, opt := range options {
		out = append(out, opt.label+" ("+opt.value+")")
	}
	return strings.Join(out, " | ")
}
