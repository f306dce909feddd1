package keywords

import (
	"context"
	"fmt"

	"github.com/testproject-io/robotkeywords/lib/browser"

	"github.com/tebeka/selenium"
)

// DeleteAllCookies deletes all cookies of the current page
func (l *Library) DeleteAllCookies(ctx context.Context) error {
	return l.do(ctx, "delete_all_cookies", "Deleted all cookies", "",
		func() error { return l.browser.DeleteAllCookies(ctx) })
}

// DeleteCookie deletes the named cookie
func (l *Library) DeleteCookie(ctx context.Context, name string) error {
	return l.do(ctx, "delete_cookie", fmt.Sprintf("Deleted cookie %v", name), name,
		func() error { return l.browser.DeleteCookie(ctx, name) })
}

// GetCookies returns all cookies of the current page.
// With asMap the cookies are returned as a name to value map,
// otherwise as the "name=value; name2=value2" string
func (l *Library) GetCookies(ctx context.Context, asMap bool) (interface{}, error) {
	return l.base(ctx, "get_cookies", "Cookies", "", func() (interface{}, error) {
		cookies, err := l.browser.GetCookies(ctx)
		if err != nil {
			return nil, err
		}
		if !asMap {
			return browser.FormatCookies(cookies), nil
		}
		out := make(map[string]string, len(cookies))
		for _, c := range cookies {
			out[c.Name] = c.Value
		}
		return out, nil
	})
}

// GetCookie returns the named cookie
func (l *Library) GetCookie(ctx context.Context, name string) (*selenium.Cookie, error) {
	value, err := l.base(ctx, "get_cookie", "Cookie", name,
		func() (interface{}, error) { return l.browser.GetCookie(ctx, name) })
	if err != nil {
		return nil, err
	}
	return value.(*selenium.Cookie), nil
}

// AddCookie adds a cookie to the current page
func (l *Library) AddCookie(ctx context.Context, cookie browser.Cookie) error {
	return l.do(ctx, "add_cookie",
		fmt.Sprintf("Added cookie: %v with value: %v", cookie.Name, cookie.Value), cookie.Name,
		func() error { return l.browser.AddCookie(ctx, cookie) })
}
