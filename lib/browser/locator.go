package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// locator is a parsed element locator
type locator struct {
	strategy string
	criteria string
}

func (r locator) String() string {
	return fmt.Sprintf("%v:%v", r.strategy, r.criteria)
}

const (
	strategyDefault     = "default"
	strategyIdentifier  = "identifier"
	strategyID          = "id"
	strategyName        = "name"
	strategyXPath       = "xpath"
	strategyCSS         = "css"
	strategyDOM         = "dom"
	strategyLink        = "link"
	strategyPartialLink = "partial link"
	strategyTag         = "tag"
	strategyClass       = "class"
)

var builtinStrategies = map[string]bool{
	strategyIdentifier:  true,
	strategyID:          true,
	strategyName:        true,
	strategyXPath:       true,
	strategyCSS:         true,
	strategyDOM:         true,
	strategyLink:        true,
	strategyPartialLink: true,
	strategyTag:         true,
	strategyClass:       true,
}

// strategy is a custom locator strategy implemented in JavaScript.
// The script receives the criteria as arguments[0] and returns an element or a list of elements.
type strategy struct {
	name    string
	script  string
	persist bool
}

// parseLocator splits "strategy:criteria" or "strategy=criteria".
// Locators starting with // or (// are XPath expressions, anything without
// a known strategy prefix uses the default strategy.
func (l *Library) parseLocator(s string) locator {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "(//") {
		return locator{strategy: strategyXPath, criteria: trimmed}
	}
	if idx := strings.IndexAny(trimmed, ":="); idx > 0 {
		prefix := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		if builtinStrategies[prefix] || l.strategies[prefix] != nil {
			return locator{strategy: prefix, criteria: strings.TrimSpace(trimmed[idx+1:])}
		}
	}
	return locator{strategy: strategyDefault, criteria: trimmed}
}

// tagSpec narrows a lookup to elements of a tag, and optionally of input types
type tagSpec struct {
	// name describes the element kind in messages
	name  string
	tag   string
	types []string
}

var (
	textFieldTypes = []string{"date", "datetime-local", "email", "month", "number",
		"password", "search", "tel", "text", "time", "url", "week", "file"}
	buttonTypes = []string{"button", "submit", "reset", "image"}
)

var (
	anyTag        = tagSpec{}
	linkTag       = tagSpec{name: "link", tag: "a"}
	imageTag      = tagSpec{name: "image", tag: "img"}
	imageInputTag = tagSpec{name: "image", tag: "input", types: []string{"image"}}
	listTag       = tagSpec{name: "list", tag: "select"}
	textareaTag   = tagSpec{name: "textarea", tag: "textarea"}
	formTag       = tagSpec{name: "form", tag: "form"}
	radioTag      = tagSpec{name: "radio button", tag: "input", types: []string{"radio"}}
	checkboxTag   = tagSpec{name: "checkbox", tag: "input", types: []string{"checkbox"}}
	textFieldTag  = tagSpec{name: "text field", tag: "input", types: textFieldTypes}
	fileUploadTag = tagSpec{name: "file upload", tag: "input", types: []string{"file"}}
	inputButton   = tagSpec{name: "button", tag: "input", types: buttonTypes}
	buttonTag     = tagSpec{name: "button", tag: "button"}
)

func (r tagSpec) matches(elem selenium.WebElement) (bool, error) {
	if r.tag == "" {
		return true, nil
	}
	name, err := elem.TagName()
	if err != nil {
		return false, trace.Wrap(err)
	}
	if !strings.EqualFold(name, r.tag) {
		return false, nil
	}
	if len(r.types) == 0 {
		return true, nil
	}
	typ, err := elem.GetAttribute("type")
	if err != nil {
		// missing attribute
		typ = ""
	}
	typ = strings.ToLower(typ)
	if typ == "" && r.tag == "input" {
		typ = "text"
	}
	for _, t := range r.types {
		if typ == t {
			return true, nil
		}
	}
	return false, nil
}

// defaultXPath builds the XPath used by the default strategy, matching
// id and name, plus the attributes that identify elements of the tag.
func defaultXPath(spec tagSpec, criteria string) string {
	lit := xpathLiteral(criteria)
	conditions := []string{"@id=" + lit, "@name=" + lit}
	switch spec.tag {
	case "a":
		conditions = append(conditions, "@href="+lit, "normalize-space(descendant-or-self::text())="+lit)
	case "img":
		conditions = append(conditions, "@src="+lit, "@alt="+lit)
	case "input":
		conditions = append(conditions, "@value="+lit, "@src="+lit)
	case "button":
		conditions = append(conditions, "@value="+lit, "normalize-space(descendant-or-self::text())="+lit)
	}
	tag := spec.tag
	if tag == "" {
		tag = "*"
	}
	return fmt.Sprintf("//%v[%v]", tag, strings.Join(conditions, " or "))
}

// xpathLiteral quotes s as an XPath string literal
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, len(parts)*2)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}

// find returns the elements matching locator and tag in the current browser
func (l *Library) find(ctx context.Context, loc string, spec tagSpec) ([]selenium.WebElement, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return l.findIn(wd, loc, spec)
}

func (l *Library) findIn(wd selenium.WebDriver, loc string, spec tagSpec) ([]selenium.WebElement, error) {
	if strings.TrimSpace(loc) == "" {
		return nil, trace.BadParameter("locator is empty")
	}
	parsed := l.parseLocator(loc)
	var elems []selenium.WebElement
	var err error
	switch parsed.strategy {
	case strategyDefault:
		elems, err = wd.FindElements(selenium.ByXPATH, defaultXPath(spec, parsed.criteria))
	case strategyIdentifier:
		elems, err = wd.FindElements(selenium.ByXPATH, defaultXPath(anyTag, parsed.criteria))
	case strategyID:
		elems, err = wd.FindElements(selenium.ByID, parsed.criteria)
	case strategyName:
		elems, err = wd.FindElements(selenium.ByName, parsed.criteria)
	case strategyXPath:
		elems, err = wd.FindElements(selenium.ByXPATH, parsed.criteria)
	case strategyCSS:
		elems, err = wd.FindElements(selenium.ByCSSSelector, parsed.criteria)
	case strategyLink:
		elems, err = wd.FindElements(selenium.ByLinkText, parsed.criteria)
	case strategyPartialLink:
		elems, err = wd.FindElements(selenium.ByPartialLinkText, parsed.criteria)
	case strategyTag:
		elems, err = wd.FindElements(selenium.ByTagName, parsed.criteria)
	case strategyClass:
		elems, err = wd.FindElements(selenium.ByClassName, parsed.criteria)
	case strategyDOM:
		elems, err = scriptElements(wd, "return "+parsed.criteria+";")
	default:
		s := l.strategies[parsed.strategy]
		elems, err = scriptElements(wd, s.script, parsed.criteria)
	}
	if err != nil {
		return nil, trace.Wrap(err, "failed to locate %q", loc)
	}
	return filter(elems, spec)
}

func filter(elems []selenium.WebElement, spec tagSpec) ([]selenium.WebElement, error) {
	if spec.tag == "" {
		return elems, nil
	}
	var out []selenium.WebElement
	for _, elem := range elems {
		ok, err := spec.matches(elem)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if ok {
			out = append(out, elem)
		}
	}
	return out, nil
}

// scriptElements runs a script returning an element or a list of elements
func scriptElements(wd selenium.WebDriver, script string, args ...interface{}) ([]selenium.WebElement, error) {
	if args == nil {
		args = []interface{}{}
	}
	data, err := wd.ExecuteScriptRaw(script, args)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if elems, err := wd.DecodeElements(data); err == nil {
		return elems, nil
	}
	elem, err := wd.DecodeElement(data)
	if err != nil {
		// null results decode to no elements
		return nil, nil
	}
	return []selenium.WebElement{elem}, nil
}

// element returns the first element matching locator, failing when there is none
func (l *Library) element(ctx context.Context, loc string, spec tagSpec) (selenium.WebElement, error) {
	elems, err := l.find(ctx, loc, spec)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if len(elems) == 0 {
		return nil, notFound(loc, spec)
	}
	return elems[0], nil
}

// firstOf returns the first element matching locator for any of the specs in order
func (l *Library) firstOf(ctx context.Context, loc string, specs ...tagSpec) (selenium.WebElement, error) {
	for _, spec := range specs {
		elems, err := l.find(ctx, loc, spec)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		if len(elems) > 0 {
			return elems[0], nil
		}
	}
	return nil, notFound(loc, specs[0])
}

func notFound(loc string, spec tagSpec) error {
	if spec.tag == "" {
		return trace.NotFound("element with locator %q not found", loc)
	}
	return trace.NotFound("%v with locator %q not found", describeTag(spec), loc)
}

func describeTag(spec tagSpec) string {
	if spec.name != "" {
		return spec.name
	}
	return spec.tag
}

// AddLocationStrategy registers a custom locator strategy implemented by a
// JavaScript snippet receiving the criteria as arguments[0].
// Strategies that do not persist are removed when the current test ends.
func (l *Library) AddLocationStrategy(name, script string, persist bool) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return trace.BadParameter("strategy name is empty")
	}
	if builtinStrategies[key] || key == strategyDefault {
		return trace.AlreadyExists("%q is a built-in locator strategy", name)
	}
	if strings.TrimSpace(script) == "" {
		return trace.BadParameter("strategy %q has no script", name)
	}
	if !strings.Contains(script, "return") {
		script = "return " + script
	}
	l.strategies[key] = &strategy{name: key, script: script, persist: persist}
	return nil
}

// RemoveLocationStrategy removes a custom locator strategy
func (l *Library) RemoveLocationStrategy(name string) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if _, ok := l.strategies[key]; !ok {
		return trace.NotFound("locator strategy %q is not registered", name)
	}
	delete(l.strategies, key)
	return nil
}
