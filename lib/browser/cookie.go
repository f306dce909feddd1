package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

// Cookie describes a cookie to add to the current page
type Cookie struct {
	Name   string
	Value  string
	Path   string
	Domain string
	Secure bool
	// Expiry is the expiration time, zero for a session cookie
	Expiry time.Time
}

// DeleteAllCookies deletes all cookies of the current page
func (l *Library) DeleteAllCookies(ctx context.Context) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.DeleteAllCookies())
}

// DeleteCookie deletes the cookie with the given name
func (l *Library) DeleteCookie(ctx context.Context, name string) error {
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(wd.DeleteCookie(name))
}

// GetCookies returns all cookies of the current page
func (l *Library) GetCookies(ctx context.Context) ([]selenium.Cookie, error) {
	wd, err := l.current(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	cookies, err := wd.GetCookies()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	return cookies, nil
}

// FormatCookies formats cookies as name=value pairs separated by semicolons
func FormatCookies(cookies []selenium.Cookie) string {
	pairs := make([]string, 0, len(cookies))
	for _, cookie := range cookies {
		pairs = append(pairs, fmt.Sprintf("%v=%v", cookie.Name, cookie.Value))
	}
	return strings.Join(pairs, "; ")
}

// GetCookie returns the cookie with the given name
func (l *Library) GetCookie(ctx context.Context, name string) (*selenium.Cookie, error) {
	cookies, err := l.GetCookies(ctx)
	if err != nil {
		return nil, trace.Wrap(err)
	}
	for _, cookie := range cookies {
		if cookie.Name == name {
			cookie := cookie
			return &cookie, nil
		}
	}
	return nil, trace.NotFound("Cookie with name '%v' not found.", name)
}

// AddCookie adds a cookie to the current page
func (l *Library) AddCookie(ctx context.Context, cookie Cookie) error {
	if cookie.Name == "" {
		return trace.BadParameter("cookie name is empty")
	}
	wd, err := l.current(ctx)
	if err != nil {
		return trace.Wrap(err)
	}
	c := &selenium.Cookie{
		Name:   cookie.Name,
		Value:  cookie.Value,
		Path:   cookie.Path,
		Domain: cookie.Domain,
		Secure: cookie.Secure,
	}
	if !cookie.Expiry.IsZero() {
		c.Expiry = uint(cookie.Expiry.Unix())
	}
	return trace.Wrap(wd.AddCookie(c))
}
