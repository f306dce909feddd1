package runner

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/gravitational/trace"
	"github.com/kr/pretty"
	"github.com/tebeka/selenium"
)

// Variables maps variable names to their values.
// Names are matched ignoring case, spaces and underscores.
type Variables map[string]string

func (v Variables) set(name, value string) {
	v[normalizeVariable(name)] = value
}

func (v Variables) get(name string) (string, bool) {
	value, ok := v[normalizeVariable(name)]
	return value, ok
}

func (v Variables) clone() Variables {
	out := make(Variables, len(v))
	for name, value := range v {
		out[name] = value
	}
	return out
}

func newVariables(values map[string]string) Variables {
	v := Variables{
		normalizeVariable("EMPTY"): "",
		normalizeVariable("SPACE"): " ",
	}
	for name, value := range values {
		v.set(name, value)
	}
	return v
}

func normalizeVariable(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer(" ", "", "_", "").Replace(name)
}

var placeholder = regexp.MustCompile(`\\?[$%]\{([^{}]+)\}`)

// expand replaces ${name} with variable values and %{NAME} with
// environment variables. A leading backslash keeps the placeholder as is.
func (v Variables) expand(s string) (string, error) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(s, func(match string) string {
		if strings.HasPrefix(match, `\`) {
			return match[1:]
		}
		name := match[2 : len(match)-1]
		if match[0] == '%' {
			value, ok := os.LookupEnv(name)
			if !ok {
				missing = append(missing, match)
			}
			return value
		}
		value, ok := v.get(name)
		if !ok {
			missing = append(missing, match)
		}
		return value
	})
	if len(missing) != 0 {
		return "", trace.NotFound("variable %v not found", strings.Join(missing, ", "))
	}
	return out, nil
}

func (v Variables) expandAll(values []string) ([]string, error) {
	out := make([]string, 0, len(values))
	for _, value := range values {
		expanded, err := v.expand(value)
		if err != nil {
			return nil, trace.Wrap(err)
		}
		out = append(out, expanded)
	}
	return out, nil
}

// settingArgs turns the init settings into sorted name=value arguments
func settingArgs(settings map[string]string) []string {
	args := make([]string, 0, len(settings))
	for name, value := range settings {
		args = append(args, name+"="+value)
	}
	sort.Strings(args)
	return args
}

// stringValue converts a keyword result to the value stored in a variable
func stringValue(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case selenium.WebElement:
		return "<WebElement>"
	case fmt.Stringer:
		return v.String()
	case map[string]string:
		return pretty.Sprintf("%# v", v)
	}
	return fmt.Sprint(value)
}
