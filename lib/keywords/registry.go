package keywords

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/browser"
	"github.com/testproject-io/robotkeywords/lib/constants"

	"github.com/gravitational/trace"
)

// keyword maps a keyword name to the method implementing it
type keyword struct {
	name   string
	params []param
	run    func(ctx context.Context, a *args) (interface{}, error)
}

// Signature returns the keyword parameters, e.g. "locator *values"
func (r keyword) Signature() string {
	out := make([]string, 0, len(r.params))
	for _, p := range r.params {
		out = append(out, p.String())
	}
	return strings.Join(out, " ")
}

// Info describes a keyword
type Info struct {
	// Name is the keyword name in reports, e.g. Click Element
	Name string
	// Args lists the keyword parameters
	Args string
}

// Keywords lists the keywords accepted by Run sorted by name
func (l *Library) Keywords() []Info {
	out := make([]Info, 0, len(l.registry))
	for _, k := range l.registry {
		out = append(out, Info{Name: DisplayName(k.name), Args: k.Signature()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Run executes the named keyword with arguments given as strings.
// Names are matched ignoring case, spaces and underscores, so Click Element,
// click_element and ClickElement name the same keyword.
func (l *Library) Run(ctx context.Context, name string, arguments ...string) (interface{}, error) {
	k, ok := l.registry[normalizeName(name)]
	if !ok {
		return nil, trace.NotFound("no keyword with name %q", name)
	}
	l.WithField(constants.FieldKeyword, k.name).Debugf("Run with %q.", arguments)
	a, err := bind(k.params, arguments)
	if err != nil {
		err = trace.Wrap(err, "invalid arguments for %v(%v)", DisplayName(k.name), k.Signature())
		return nil, l.do(ctx, k.name, "", strings.Join(arguments, " "), func() error { return err })
	}
	return k.run(ctx, a)
}

func normalizeName(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "", "_", "").Replace(name)
}

func none(err error) (interface{}, error) {
	return nil, err
}

func result(value interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return value, nil
}

func pair(a, b int, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return []int{a, b}, nil
}

func (l *Library) buildRegistry() map[string]*keyword {
	registry := map[string]*keyword{}
	add := func(name, params string, run func(ctx context.Context, a *args) (interface{}, error)) {
		registry[normalizeName(name)] = &keyword{name: name, params: parseParams(params), run: run}
	}

	// TestProject
	add("init_testproject_driver", "browser= url= timeout:millis= project_name= job_name= desired_capabilities= "+
		"disabled_reports:bool=False dev_token= remote_url= driver_path=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.InitDriver(ctx, l.initOptions(a)))
		})
	add("create_step", "description message passed:bool=True screenshot:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.CreateStep(ctx, a.raw("description"), a.raw("message"), a.flag("passed"), a.flag("screenshot")))
		})
	add("open_browser", "url= *rest", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.OpenBrowser(ctx, a.str("url")))
	})
	add("create_webdriver", "driver_name alias= *rest", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CreateWebdriver(ctx, a.str("driver_name"), a.str("alias")))
	})

	// Lists
	add("select_from_list_by_value", "locator *values", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectFromListByValue(ctx, a.raw("locator"), a.rest...))
	})
	add("select_from_list_by_label", "locator *labels", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectFromListByLabel(ctx, a.raw("locator"), a.rest...))
	})
	add("select_from_list_by_index", "locator *indexes", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectFromListByIndex(ctx, a.raw("locator"), a.rest...))
	})
	add("select_all_from_list", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectAllFromList(ctx, a.raw("locator")))
	})
	add("unselect_all_from_list", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectAllFromList(ctx, a.raw("locator")))
	})
	add("unselect_from_list_by_index", "locator *indexes", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectFromListByIndex(ctx, a.raw("locator"), a.rest...))
	})
	add("unselect_from_list_by_value", "locator *values", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectFromListByValue(ctx, a.raw("locator"), a.rest...))
	})
	add("unselect_from_list_by_label", "locator *labels", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectFromListByLabel(ctx, a.raw("locator"), a.rest...))
	})
	add("get_selected_list_label", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSelectedListLabel(ctx, a.raw("locator")))
	})
	add("get_selected_list_labels", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSelectedListLabels(ctx, a.raw("locator")))
	})
	add("get_selected_list_value", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSelectedListValue(ctx, a.raw("locator")))
	})
	add("get_selected_list_values", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSelectedListValues(ctx, a.raw("locator")))
	})
	add("get_list_items", "locator values:bool=False", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetListItems(ctx, a.raw("locator"), a.flag("values")))
	})
	add("list_selection_should_be", "locator *expected", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ListSelectionShouldBe(ctx, a.raw("locator"), a.rest...))
	})
	add("list_should_have_no_selections", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ListShouldHaveNoSelections(ctx, a.raw("locator")))
	})
	add("page_should_contain_list", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainList(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_list", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainList(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})

	// Screenshots
	add("capture_page_screenshot", "filename=", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.CapturePageScreenshot(ctx, a.str("filename")))
	})
	add("capture_element_screenshot", "locator filename=", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.CaptureElementScreenshot(ctx, a.raw("locator"), a.str("filename")))
	})
	add("set_screenshot_directory", "path", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SetScreenshotDirectory(ctx, a.raw("path")))
	})

	// Elements
	add("get_webelement", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWebElement(ctx, a.raw("locator")))
	})
	add("get_webelements", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWebElements(ctx, a.raw("locator")))
	})
	add("get_element_count", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetElementCount(ctx, a.raw("locator")))
	})
	add("element_should_contain", "locator expected message= ignore_case:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.ElementShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("message"), a.flag("ignore_case")))
		})
	add("element_should_not_contain", "locator expected message= ignore_case:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.ElementShouldNotContain(ctx, a.raw("locator"), a.raw("expected"), a.str("message"), a.flag("ignore_case")))
		})
	add("page_should_contain_element", "locator message= loglevel=TRACE limit:limit=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.PageShouldContainElement(ctx, a.raw("locator"), a.str("message"), a.str("loglevel"),
				a.limit("limit", browser.NoLimit)))
		})
	add("page_should_not_contain_element", "locator message= loglevel=TRACE",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.PageShouldNotContainElement(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
		})
	add("page_should_contain", "text loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContain(ctx, a.raw("text"), a.str("loglevel")))
	})
	add("page_should_not_contain", "text loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContain(ctx, a.raw("text"), a.str("loglevel")))
	})
	add("locator_should_match_x_times", "locator x:int message= loglevel=TRACE",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.LocatorShouldMatchXTimes(ctx, a.raw("locator"), a.number("x"), a.str("message"), a.str("loglevel")))
		})
	add("assign_id_to_element", "locator id", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.AssignIDToElement(ctx, a.raw("locator"), a.raw("id")))
	})
	add("element_should_be_disabled", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ElementShouldBeDisabled(ctx, a.raw("locator")))
	})
	add("element_should_be_enabled", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ElementShouldBeEnabled(ctx, a.raw("locator")))
	})
	add("element_should_be_focused", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ElementShouldBeFocused(ctx, a.raw("locator")))
	})
	add("element_should_be_visible", "locator message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ElementShouldBeVisible(ctx, a.raw("locator"), a.str("message")))
	})
	add("element_should_not_be_visible", "locator message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ElementShouldNotBeVisible(ctx, a.raw("locator"), a.str("message")))
	})
	add("element_text_should_be", "locator expected message= ignore_case:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.ElementTextShouldBe(ctx, a.raw("locator"), a.raw("expected"), a.str("message"), a.flag("ignore_case")))
		})
	add("element_text_should_not_be", "locator not_expected message= ignore_case:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.ElementTextShouldNotBe(ctx, a.raw("locator"), a.raw("not_expected"), a.str("message"), a.flag("ignore_case")))
		})
	add("get_element_attribute", "locator attribute", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetElementAttribute(ctx, a.raw("locator"), a.raw("attribute")))
	})
	add("element_attribute_value_should_be", "locator attribute expected message=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.ElementAttributeValueShouldBe(ctx, a.raw("locator"), a.raw("attribute"), a.raw("expected"), a.str("message")))
		})
	add("get_horizontal_position", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetHorizontalPosition(ctx, a.raw("locator")))
	})
	add("get_vertical_position", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetVerticalPosition(ctx, a.raw("locator")))
	})
	add("get_element_size", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return pair(l.GetElementSize(ctx, a.raw("locator")))
	})
	add("cover_element", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CoverElement(ctx, a.raw("locator")))
	})
	add("get_value", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetValue(ctx, a.raw("locator")))
	})
	add("get_text", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetText(ctx, a.raw("locator")))
	})
	add("clear_element_text", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClearElementText(ctx, a.raw("locator")))
	})
	add("click_button", "locator modifier=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClickButton(ctx, a.raw("locator"), modifier(a)))
	})
	add("click_image", "locator modifier=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClickImage(ctx, a.raw("locator"), modifier(a)))
	})
	add("click_link", "locator modifier=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClickLink(ctx, a.raw("locator"), modifier(a)))
	})
	add("click_element", "locator modifier= action_chain:bool=False", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClickElement(ctx, a.raw("locator"), modifier(a)))
	})
	add("click_element_at_coordinates", "locator xoffset:int yoffset:int", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ClickElementAtCoordinates(ctx, a.raw("locator"), a.number("xoffset"), a.number("yoffset")))
	})
	add("double_click_element", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.DoubleClickElement(ctx, a.raw("locator")))
	})
	add("set_focus_to_element", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SetFocusToElement(ctx, a.raw("locator")))
	})
	add("scroll_element_into_view", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ScrollElementIntoView(ctx, a.raw("locator")))
	})
	add("drag_and_drop", "locator target", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.DragAndDrop(ctx, a.raw("locator"), a.raw("target")))
	})
	add("drag_and_drop_by_offset", "locator xoffset:int yoffset:int", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.DragAndDropByOffset(ctx, a.raw("locator"), a.number("xoffset"), a.number("yoffset")))
	})
	add("mouse_down", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseDown(ctx, a.raw("locator")))
	})
	add("mouse_out", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseOut(ctx, a.raw("locator")))
	})
	add("mouse_over", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseOver(ctx, a.raw("locator")))
	})
	add("mouse_up", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseUp(ctx, a.raw("locator")))
	})
	add("mouse_down_on_link", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseDownOnLink(ctx, a.raw("locator")))
	})
	add("mouse_down_on_image", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MouseDownOnImage(ctx, a.raw("locator")))
	})
	add("open_context_menu", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.OpenContextMenu(ctx, a.raw("locator")))
	})
	add("simulate_event", "locator event", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SimulateEvent(ctx, a.raw("locator"), a.raw("event")))
	})
	add("press_key", "locator key", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PressKey(ctx, a.raw("locator"), a.raw("key")))
	})
	add("press_keys", "locator= *keys", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PressKeys(ctx, a.str("locator"), a.rest...))
	})
	add("get_all_links", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetAllLinks(ctx))
	})
	add("page_should_contain_link", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainLink(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_link", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainLink(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_contain_image", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainImage(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_image", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainImage(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("add_location_strategy", "strategy_name strategy_keyword persist:bool=False",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.AddLocationStrategy(ctx, a.raw("strategy_name"), a.raw("strategy_keyword"), a.flag("persist")))
		})
	add("remove_location_strategy", "strategy_name", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.RemoveLocationStrategy(ctx, a.raw("strategy_name")))
	})

	// Alerts
	add("input_text_into_alert", "text action=ACCEPT timeout:duration=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.InputTextIntoAlert(ctx, a.raw("text"), a.str("action"), a.duration("timeout")))
	})
	add("alert_should_be_present", "text= action=ACCEPT timeout:duration=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.AlertShouldBePresent(ctx, a.str("text"), a.str("action"), a.duration("timeout")))
	})
	add("alert_should_not_be_present", "action=ACCEPT timeout:duration=0", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.AlertShouldNotBePresent(ctx, a.str("action"), a.duration("timeout")))
	})
	add("handle_alert", "action=ACCEPT timeout:duration=", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.HandleAlert(ctx, a.str("action"), a.duration("timeout")))
	})

	// Cookies
	add("delete_all_cookies", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.DeleteAllCookies(ctx))
	})
	add("delete_cookie", "name", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.DeleteCookie(ctx, a.raw("name")))
	})
	add("get_cookies", "as_dict:bool=False", func(ctx context.Context, a *args) (interface{}, error) {
		return l.GetCookies(ctx, a.flag("as_dict"))
	})
	add("get_cookie", "name", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetCookie(ctx, a.raw("name")))
	})
	add("add_cookie", "name value path= domain= secure:bool=False expiry=", func(ctx context.Context, a *args) (interface{}, error) {
		expiry, err := parseExpiry(a.str("expiry"))
		if err != nil {
			return nil, trace.Wrap(err)
		}
		return none(l.AddCookie(ctx, browser.Cookie{
			Name:   a.raw("name"),
			Value:  a.raw("value"),
			Path:   a.str("path"),
			Domain: a.str("domain"),
			Secure: a.flag("secure"),
			Expiry: expiry,
		}))
	})

	// JavaScript
	add("execute_javascript", "*code", func(ctx context.Context, a *args) (interface{}, error) {
		return l.ExecuteJavascript(ctx, a.rest...)
	})
	add("execute_async_javascript", "*code", func(ctx context.Context, a *args) (interface{}, error) {
		return l.ExecuteAsyncJavascript(ctx, a.rest...)
	})
	add("register_keyword_to_run_on_failure", "keyword", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.RegisterKeywordToRunOnFailure(ctx, a.raw("keyword")))
	})

	// Tables
	add("get_table_cell", "locator row:int column:int loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetTableCell(ctx, a.raw("locator"), a.number("row"), a.number("column"), a.str("loglevel")))
	})
	add("table_cell_should_contain", "locator row:int column:int expected loglevel=TRACE",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.TableCellShouldContain(ctx, a.raw("locator"), a.number("row"), a.number("column"),
				a.raw("expected"), a.str("loglevel")))
		})
	add("table_column_should_contain", "locator column:int expected loglevel=TRACE",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.TableColumnShouldContain(ctx, a.raw("locator"), a.number("column"), a.raw("expected"), a.str("loglevel")))
		})
	add("table_footer_should_contain", "locator expected loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TableFooterShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("loglevel")))
	})
	add("table_header_should_contain", "locator expected loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TableHeaderShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("loglevel")))
	})
	add("table_row_should_contain", "locator row:int expected loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TableRowShouldContain(ctx, a.raw("locator"), a.number("row"), a.raw("expected"), a.str("loglevel")))
	})
	add("table_should_contain", "locator expected loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TableShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("loglevel")))
	})

	// Waiting
	add("wait_for_condition", "condition timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitForCondition(ctx, a.raw("condition"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_location_is", "expected timeout:duration= message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilLocationIs(ctx, a.raw("expected"), a.duration("timeout"), a.str("message")))
	})
	add("wait_until_location_is_not", "location timeout:duration= message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilLocationIsNot(ctx, a.raw("location"), a.duration("timeout"), a.str("message")))
	})
	add("wait_until_location_contains", "expected timeout:duration= message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilLocationContains(ctx, a.raw("expected"), a.duration("timeout"), a.str("message")))
	})
	add("wait_until_location_does_not_contain", "location timeout:duration= message=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.WaitUntilLocationDoesNotContain(ctx, a.raw("location"), a.duration("timeout"), a.str("message")))
		})
	add("wait_until_page_contains", "text timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilPageContains(ctx, a.raw("text"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_page_does_not_contain", "text timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilPageDoesNotContain(ctx, a.raw("text"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_page_contains_element", "locator timeout:duration= error= limit:limit=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.WaitUntilPageContainsElement(ctx, a.raw("locator"), a.duration("timeout"), a.str("error"),
				a.limit("limit", browser.NoLimit)))
		})
	add("wait_until_page_does_not_contain_element", "locator timeout:duration= error= limit:limit=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.WaitUntilPageDoesNotContainElement(ctx, a.raw("locator"), a.duration("timeout"), a.str("error"),
				a.limit("limit", browser.NoLimit)))
		})
	add("wait_until_element_is_visible", "locator timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilElementIsVisible(ctx, a.raw("locator"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_element_is_not_visible", "locator timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilElementIsNotVisible(ctx, a.raw("locator"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_element_is_enabled", "locator timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilElementIsEnabled(ctx, a.raw("locator"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_element_contains", "locator text timeout:duration= error=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.WaitUntilElementContains(ctx, a.raw("locator"), a.raw("text"), a.duration("timeout"), a.str("error")))
	})
	add("wait_until_element_does_not_contain", "locator text timeout:duration= error=",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.WaitUntilElementDoesNotContain(ctx, a.raw("locator"), a.raw("text"), a.duration("timeout"), a.str("error")))
		})

	// Windows
	add("select_window", "locator=MAIN timeout:duration=", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SelectWindow(ctx, a.str("locator")))
	})
	add("switch_window", "locator=MAIN timeout:duration= browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SwitchWindow(ctx, a.str("locator"), a.duration("timeout"), a.str("browser")))
	})
	add("close_window", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CloseWindow(ctx))
	})
	add("get_window_handles", "browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWindowHandles(ctx, a.str("browser")))
	})
	add("get_window_identifiers", "browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWindowIdentifiers(ctx, a.str("browser")))
	})
	add("get_window_names", "browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWindowNames(ctx, a.str("browser")))
	})
	add("get_window_titles", "browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetWindowTitles(ctx, a.str("browser")))
	})
	add("get_locations", "browser=CURRENT", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetLocations(ctx, a.str("browser")))
	})
	add("maximize_browser_window", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.MaximizeBrowserWindow(ctx))
	})
	add("get_window_size", "inner:bool=False", func(ctx context.Context, a *args) (interface{}, error) {
		return pair(l.GetWindowSize(ctx, a.flag("inner")))
	})
	add("set_window_size", "width:int height:int inner:bool=False", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SetWindowSize(ctx, a.number("width"), a.number("height"), a.flag("inner")))
	})
	add("get_window_position", "", func(ctx context.Context, a *args) (interface{}, error) {
		return pair(l.GetWindowPosition(ctx))
	})
	add("set_window_position", "x:int y:int", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SetWindowPosition(ctx, a.number("x"), a.number("y")))
	})

	// Frames
	add("select_frame", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectFrame(ctx, a.raw("locator")))
	})
	add("unselect_frame", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectFrame(ctx))
	})
	add("current_frame_should_contain", "text loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CurrentFrameShouldContain(ctx, a.raw("text"), a.str("loglevel")))
	})
	add("current_frame_should_not_contain", "text loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CurrentFrameShouldNotContain(ctx, a.raw("text"), a.str("loglevel")))
	})
	add("frame_should_contain", "locator text loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.FrameShouldContain(ctx, a.raw("locator"), a.raw("text"), a.str("loglevel")))
	})

	// Forms
	add("submit_form", "locator=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SubmitForm(ctx, a.str("locator")))
	})
	add("checkbox_should_be_selected", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CheckboxShouldBeSelected(ctx, a.raw("locator")))
	})
	add("checkbox_should_not_be_selected", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CheckboxShouldNotBeSelected(ctx, a.raw("locator")))
	})
	add("page_should_contain_checkbox", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainCheckbox(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_checkbox", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainCheckbox(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("select_checkbox", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectCheckbox(ctx, a.raw("locator")))
	})
	add("unselect_checkbox", "locator", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.UnselectCheckbox(ctx, a.raw("locator")))
	})
	add("page_should_contain_radio_button", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainRadioButton(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_radio_button", "locator message= loglevel=TRACE",
		func(ctx context.Context, a *args) (interface{}, error) {
			return none(l.PageShouldNotContainRadioButton(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
		})
	add("radio_button_should_be_set_to", "group_name value", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.RadioButtonShouldBeSetTo(ctx, a.raw("group_name"), a.raw("value")))
	})
	add("radio_button_should_not_be_selected", "group_name", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.RadioButtonShouldNotBeSelected(ctx, a.raw("group_name")))
	})
	add("select_radio_button", "group_name value", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SelectRadioButton(ctx, a.raw("group_name"), a.raw("value")))
	})
	add("choose_file", "locator file_path", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ChooseFile(ctx, a.raw("locator"), a.raw("file_path")))
	})
	add("input_password", "locator password clear:bool=True", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.InputPassword(ctx, a.raw("locator"), a.raw("password"), a.flag("clear")))
	})
	add("input_text", "locator text clear:bool=True", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.InputText(ctx, a.raw("locator"), a.raw("text"), a.flag("clear")))
	})
	add("page_should_contain_textfield", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainTextfield(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_textfield", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainTextfield(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("textfield_should_contain", "locator expected message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TextfieldShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("message")))
	})
	add("textfield_value_should_be", "locator expected message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TextfieldValueShouldBe(ctx, a.raw("locator"), a.raw("expected"), a.str("message")))
	})
	add("textarea_should_contain", "locator expected message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TextareaShouldContain(ctx, a.raw("locator"), a.raw("expected"), a.str("message")))
	})
	add("textarea_value_should_be", "locator expected message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TextareaValueShouldBe(ctx, a.raw("locator"), a.raw("expected"), a.str("message")))
	})
	add("page_should_contain_button", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldContainButton(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})
	add("page_should_not_contain_button", "locator message= loglevel=TRACE", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.PageShouldNotContainButton(ctx, a.raw("locator"), a.str("message"), a.str("loglevel")))
	})

	// Browser management
	add("switch_browser", "index_or_alias", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SwitchBrowser(ctx, a.raw("index_or_alias")))
	})
	add("get_browser_ids", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetBrowserIDs(ctx))
	})
	add("get_browser_aliases", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetBrowserAliases(ctx))
	})
	add("close_browser", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CloseBrowser(ctx))
	})
	add("close_all_browsers", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.CloseAllBrowsers(ctx))
	})
	add("get_session_id", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSessionID(ctx))
	})
	add("get_source", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSource(ctx))
	})
	add("get_title", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetTitle(ctx))
	})
	add("get_location", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetLocation(ctx))
	})
	add("location_should_be", "url message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.LocationShouldBe(ctx, a.raw("url"), a.str("message")))
	})
	add("location_should_contain", "expected message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.LocationShouldContain(ctx, a.raw("expected"), a.str("message")))
	})
	add("log_location", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.LogLocation(ctx))
	})
	add("log_source", "loglevel=INFO", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.LogSource(ctx, a.raw("loglevel")))
	})
	add("log_title", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.LogTitle(ctx))
	})
	add("title_should_be", "title message=", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.TitleShouldBe(ctx, a.raw("title"), a.str("message")))
	})
	add("go_back", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.GoBack(ctx))
	})
	add("go_to", "url", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.GoTo(ctx, a.raw("url")))
	})
	add("reload_page", "", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.ReloadPage(ctx))
	})
	add("get_selenium_speed", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSeleniumSpeed(ctx))
	})
	add("get_selenium_timeout", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSeleniumTimeout(ctx))
	})
	add("get_selenium_implicit_wait", "", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.GetSeleniumImplicitWait(ctx))
	})
	add("set_selenium_speed", "value:duration", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SetSeleniumSpeed(ctx, a.duration("value")))
	})
	add("set_selenium_timeout", "value:duration", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SetSeleniumTimeout(ctx, a.duration("value")))
	})
	add("set_selenium_implicit_wait", "value:duration", func(ctx context.Context, a *args) (interface{}, error) {
		return result(l.SetSeleniumImplicitWait(ctx, a.duration("value")))
	})
	add("set_browser_implicit_wait", "value:duration", func(ctx context.Context, a *args) (interface{}, error) {
		return none(l.SetBrowserImplicitWait(ctx, a.duration("value")))
	})
	return registry
}

// modifier accepts False as no modifier
func modifier(a *args) string {
	if !a.flag("modifier") {
		return ""
	}
	return a.raw("modifier")
}

// parseExpiry accepts a unix timestamp or a time in RFC 3339 or "2006-01-02 15:04:05" format
func parseExpiry(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.Unix(secs, 0), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, trace.BadParameter("invalid cookie expiry %q", value)
}
