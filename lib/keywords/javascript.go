package keywords

import (
	"context"
	"fmt"
	"strings"
)

// ExecuteJavascript runs the script built from code and returns its result.
// The code may name a .js file and pass arguments after an ARGUMENTS marker.
func (l *Library) ExecuteJavascript(ctx context.Context, code ...string) (interface{}, error) {
	joined := strings.Join(code, " ")
	return l.base(ctx, "execute_javascript", fmt.Sprintf("Executed %v", joined), joined,
		func() (interface{}, error) { return l.browser.ExecuteJavascript(ctx, code...) })
}

// ExecuteAsyncJavascript runs the asynchronous script built from code and returns its result
func (l *Library) ExecuteAsyncJavascript(ctx context.Context, code ...string) (interface{}, error) {
	joined := strings.Join(code, " ")
	return l.base(ctx, "execute_async_javascript", fmt.Sprintf("Executed %v Asynchronously", joined), joined,
		func() (interface{}, error) { return l.browser.ExecuteAsyncJavascript(ctx, code...) })
}

// RegisterKeywordToRunOnFailure sets the keyword run when another keyword fails
// and returns the previous one
func (l *Library) RegisterKeywordToRunOnFailure(ctx context.Context, keyword string) (string, error) {
	return l.getString(ctx, "register_keyword_to_run_on_failure", "Previous keyword", keyword,
		func() (string, error) { return l.browser.RegisterKeywordToRunOnFailure(keyword), nil })
}
