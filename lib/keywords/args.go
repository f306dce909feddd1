package keywords

import (
	"strconv"
	"strings"
	"time"

	"github.com/testproject-io/robotkeywords/lib/config"

	"github.com/gravitational/trace"
)

// param describes a keyword parameter declared as
//
//	name            required
//	name=default    optional
//	*name           variadic
//
// A :kind suffix on the name, e.g. timeout:duration=, makes binding validate
// the value as one of int, limit, bool, duration or millis.
type param struct {
	name     string
	kind     string
	def      string
	optional bool
	variadic bool
}

const (
	kindInt      = "int"
	kindLimit    = "limit"
	kindBool     = "bool"
	kindDuration = "duration"
	kindMillis   = "millis"
)

func parseParams(spec string) []param {
	var params []param
	for _, field := range strings.Fields(spec) {
		var p param
		if strings.HasPrefix(field, "*") {
			p.variadic, p.optional = true, true
			field = field[1:]
		}
		if idx := strings.Index(field, "="); idx >= 0 {
			p.optional = true
			field, p.def = field[:idx], field[idx+1:]
		}
		if idx := strings.Index(field, ":"); idx >= 0 {
			field, p.kind = field[:idx], field[idx+1:]
		}
		p.name = field
		params = append(params, p)
	}
	return params
}

func (r param) String() string {
	switch {
	case r.variadic:
		return "*" + r.name
	case r.optional:
		return r.name + "=" + r.def
	}
	return r.name
}

func (r param) validate(value string) error {
	var err error
	switch r.kind {
	case kindInt:
		_, err = strconv.Atoi(strings.TrimSpace(value))
	case kindLimit:
		if !isNone(value) {
			_, err = strconv.Atoi(strings.TrimSpace(value))
		}
	case kindDuration:
		_, err = parseDuration(value)
	case kindMillis:
		_, err = parseMillis(value)
	}
	if err != nil {
		return trace.BadParameter("argument %q got invalid %v value %q", r.name, r.kind, value)
	}
	return nil
}

// args holds keyword arguments bound to parameters
type args struct {
	values map[string]string
	rest   []string
}

// bind assigns raw arguments to params. Arguments of the form name=value
// are named when name is one of the parameters, the others are positional.
// A backslash before = keeps an argument positional.
func bind(params []param, raw []string) (*args, error) {
	a := &args{values: map[string]string{}}
	index := make(map[string]param, len(params))
	for _, p := range params {
		if !p.variadic {
			index[p.name] = p
		}
	}
	next := 0
	for _, arg := range raw {
		if name, value, ok := splitNamed(arg); ok {
			if _, known := index[name]; known {
				if _, dup := a.values[name]; dup {
					return nil, trace.BadParameter("got multiple values for argument %q", name)
				}
				a.values[name] = value
				continue
			}
		}
		arg = strings.Replace(arg, `\=`, "=", -1)
		for next < len(params) && !params[next].variadic {
			if _, ok := a.values[params[next].name]; !ok {
				break
			}
			next++
		}
		if next >= len(params) {
			return nil, trace.BadParameter("expected at most %v arguments, got %v", len(params), len(raw))
		}
		if params[next].variadic {
			a.rest = append(a.rest, arg)
			continue
		}
		a.values[params[next].name] = arg
		next++
	}
	for _, p := range params {
		if p.variadic {
			continue
		}
		if _, ok := a.values[p.name]; !ok {
			if !p.optional {
				return nil, trace.BadParameter("missing value for argument %q", p.name)
			}
			a.values[p.name] = p.def
		}
		if err := p.validate(a.values[p.name]); err != nil {
			return nil, trace.Wrap(err)
		}
	}
	return a, nil
}

func splitNamed(arg string) (name, value string, ok bool) {
	idx := strings.Index(arg, "=")
	if idx <= 0 || arg[idx-1] == '\\' {
		return "", "", false
	}
	return arg[:idx], arg[idx+1:], true
}

func isNone(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "none")
}

// str returns the argument, empty for None
func (a *args) str(name string) string {
	if isNone(a.values[name]) {
		return ""
	}
	return a.values[name]
}

// raw returns the argument as given
func (a *args) raw(name string) string {
	return a.values[name]
}

// flag follows the keyword runtime: empty, false, no, off, 0 and none are false
func (a *args) flag(name string) bool {
	switch strings.ToLower(strings.TrimSpace(a.values[name])) {
	case "", "false", "no", "off", "0", "none":
		return false
	}
	return true
}

func (a *args) number(name string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(a.values[name]))
	return n
}

// limit returns the number or noLimit for None
func (a *args) limit(name string, noLimit int) int {
	if isNone(a.values[name]) {
		return noLimit
	}
	return a.number(name)
}

func (a *args) duration(name string) time.Duration {
	d, _ := parseDuration(a.values[name])
	return d
}

func (a *args) millis(name string) time.Duration {
	d, _ := parseMillis(a.values[name])
	return d
}

// parseDuration parses a time string, None is zero
func parseDuration(value string) (time.Duration, error) {
	if isNone(value) {
		return 0, nil
	}
	return config.ParseDuration(value)
}

// parseMillis parses a number of milliseconds or a time string
func parseMillis(value string) (time.Duration, error) {
	if isNone(value) {
		return 0, nil
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
		return time.Duration(n * float64(time.Millisecond)), nil
	}
	return config.ParseDuration(value)
}
