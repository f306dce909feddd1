package browser

import (
	"context"
	"io/ioutil"
	"os"
	"strings"

	"github.com/gravitational/trace"
)

// argumentsMarker separates code from arguments in JavaScript keywords
const argumentsMarker = "ARGUMENTS"

// ExecuteJavascript runs code in the current window and returns its result.
// Code parts are joined with spaces, parts after ARGUMENTS are passed as
// arguments[i]. A first part naming an existing .js file is replaced by the file.
func (l *Library) ExecuteJavascript(ctx context.Context, code ...string) (interface{}, error) {
	script, args, err := parseScript(code)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	l.Debugf("Executing JavaScript:\n%v", script)
	return l.executeScript(ctx, script, args...)
}

// ExecuteAsyncJavascript runs asynchronous code that signals completion by
// calling the last argument
func (l *Library) ExecuteAsyncJavascript(ctx context.Context, code ...string) (interface{}, error) {
	script, args, err := parseScript(code)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	l.Debugf("Executing asynchronous JavaScript:\n%v", script)
	result, err := wd.ExecuteScriptAsync(script, args)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return result, nil
}

func (l *Library) executeScript(ctx context.Context, script string, args ...interface{}) (interface{}, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	if args == nil {
		args = []interface{}{}
	}
	result, err := wd.ExecuteScript(script, args)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return result, nil
}

func parseScript(code []string) (script string, args []interface{}, err error) {
	var parts []string
	var marker bool
	args = []interface{}{}
	for _, part := range code {
		switch {
		case part == argumentsMarker && !marker:
			marker = true
		case marker:
			args = append(args, part)
		default:
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", nil, trace.BadParameter("no JavaScript code given")
	}
	if strings.HasSuffix(parts[0], ".js") {
		if _, err := os.Stat(parts[0]); err == nil {
			data, err := ioutil.ReadFile(parts[0])
			if err != nil {
				return "", nil, trace.ConvertSystemError(err)
			}
			parts[0] = string(data)
		}
	}
	return strings.Join(parts, " "), args, nil
}
