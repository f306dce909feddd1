package keywords

import (
	"context"
	"fmt"
)

// SelectFromListByValue selects options of the list by their values
func (l *Library) SelectFromListByValue(ctx context.Context, loc string, values ...string) error {
	return l.do(ctx, "select_from_list_by_value",
		fmt.Sprintf("Values selected: %q", values),
		fmt.Sprintf("Values: %q, List: %v", values, loc),
		func() error { return l.browser.SelectFromListByValue(ctx, loc, values...) })
}

// SelectFromListByLabel selects options of the list by their labels
func (l *Library) SelectFromListByLabel(ctx context.Context, loc string, labels ...string) error {
	return l.do(ctx, "select_from_list_by_label",
		fmt.Sprintf("Selected labels %q", labels),
		fmt.Sprintf("Labels: %q, List: %v", labels, loc),
		func() error { return l.browser.SelectFromListByLabel(ctx, loc, labels...) })
}

// SelectFromListByIndex selects options of the list by their indexes
func (l *Library) SelectFromListByIndex(ctx context.Context, loc string, indexes ...string) error {
	return l.do(ctx, "select_from_list_by_index",
		fmt.Sprintf("Selected indexes %v", indexes),
		fmt.Sprintf("Indexes: %v, List: %v", indexes, loc),
		func() error { return l.browser.SelectFromListByIndex(ctx, loc, indexes...) })
}

// SelectAllFromList selects every option of a multi-selection list
func (l *Library) SelectAllFromList(ctx context.Context, loc string) error {
	return l.do(ctx, "select_all_from_list",
		fmt.Sprintf("Selected all values from %q", loc), fmt.Sprintf("%q", loc),
		func() error { return l.browser.SelectAllFromList(ctx, loc) })
}

// UnselectAllFromList unselects every option of a multi-selection list
func (l *Library) UnselectAllFromList(ctx context.Context, loc string) error {
	return l.do(ctx, "unselect_all_from_list",
		fmt.Sprintf("Unselected all from %q", loc), fmt.Sprintf("%q", loc),
		func() error { return l.browser.UnselectAllFromList(ctx, loc) })
}

// UnselectFromListByIndex unselects options of the list by their indexes
func (l *Library) UnselectFromListByIndex(ctx context.Context, loc string, indexes ...string) error {
	return l.do(ctx, "unselect_from_list_by_index",
		fmt.Sprintf("Unselected %v from %q", indexes, loc),
		fmt.Sprintf("Indexes: %v, List: %v", indexes, loc),
		func() error { return l.browser.UnselectFromListByIndex(ctx, loc, indexes...) })
}

// UnselectFromListByValue unselects options of the list by their values
func (l *Library) UnselectFromListByValue(ctx context.Context, loc string, values ...string) error {
	return l.do(ctx, "unselect_from_list_by_value",
		fmt.Sprintf("Unselected %q from %q", values, loc),
		fmt.Sprintf("Values: %q, List: %v", values, loc),
		func() error { return l.browser.UnselectFromListByValue(ctx, loc, values...) })
}

// UnselectFromListByLabel unselects options of the list by their labels
func (l *Library) UnselectFromListByLabel(ctx context.Context, loc string, labels ...string) error {
	return l.do(ctx, "unselect_from_list_by_label",
		fmt.Sprintf("Unselected %q from %q", labels, loc),
		fmt.Sprintf("Labels: %q, List: %v", labels, loc),
		func() error { return l.browser.UnselectFromListByLabel(ctx, loc, labels...) })
}

// GetSelectedListLabel returns the label of the selected option
func (l *Library) GetSelectedListLabel(ctx context.Context, loc string) (string, error) {
	return l.getString(ctx, "get_selected_list_label", "label", "List: "+loc,
		func() (string, error) { return l.browser.GetSelectedListLabel(ctx, loc) })
}

// GetSelectedListLabels returns the labels of the selected options
func (l *Library) GetSelectedListLabels(ctx context.Context, loc string) ([]string, error) {
	return l.getStrings(ctx, "get_selected_list_labels", "labels", "List: "+loc,
		func() ([]string, error) { return l.browser.GetSelectedListLabels(ctx, loc) })
}

// GetSelectedListValue returns the value of the selected option
func (l *Library) GetSelectedListValue(ctx context.Context, loc string) (string, error) {
	return l.getString(ctx, "get_selected_list_value", "value", "List: "+loc,
		func() (string, error) { return l.browser.GetSelectedListValue(ctx, loc) })
}

// GetSelectedListValues returns the values of the selected options
func (l *Library) GetSelectedListValues(ctx context.Context, loc string) ([]string, error) {
	return l.getStrings(ctx, "get_selected_list_values", "values", "List: "+loc,
		func() ([]string, error) { return l.browser.GetSelectedListValues(ctx, loc) })
}

// GetListItems returns the labels, or the values with useValues, of all options
func (l *Library) GetListItems(ctx context.Context, loc string, useValues bool) ([]string, error) {
	return l.getStrings(ctx, "get_list_items", "list items", "List: "+loc,
		func() ([]string, error) { return l.browser.GetListItems(ctx, loc, useValues) })
}

// ListSelectionShouldBe verifies the list selection matches expected labels or values
func (l *Library) ListSelectionShouldBe(ctx context.Context, loc string, expected ...string) error {
	return l.do(ctx, "list_selection_should_be",
		fmt.Sprintf("Selection is %q", expected), "List: "+loc,
		func() error { return l.browser.ListSelectionShouldBe(ctx, loc, expected...) })
}

// ListShouldHaveNoSelections verifies nothing is selected in the list
func (l *Library) ListShouldHaveNoSelections(ctx context.Context, loc string) error {
	return l.do(ctx, "list_should_have_no_selections",
		fmt.Sprintf("List %q has no selections", loc), "List: "+loc,
		func() error { return l.browser.ListShouldHaveNoSelections(ctx, loc) })
}

// PageShouldContainList verifies the list is found on the page
func (l *Library) PageShouldContainList(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_contain_list", "List is in page", "List: "+loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldContainList(ctx, loc, message)
		}))
}

// PageShouldNotContainList verifies the list is not found on the page
func (l *Library) PageShouldNotContainList(ctx context.Context, loc, message, loglevel string) error {
	return l.do(ctx, "page_should_not_contain_list", "List is not in page", "List: "+loc,
		l.logSourceOnFailure(ctx, loglevel, func() error {
			return l.browser.PageShouldNotContainList(ctx, loc, message)
		}))
}
