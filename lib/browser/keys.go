package browser

import (
	"context"
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
)

var namedKeys = map[string]string{
	"NULL":        selenium.NullKey,
	"CANCEL":      selenium.CancelKey,
	"HELP":        selenium.HelpKey,
	"BACKSPACE":   selenium.BackspaceKey,
	"BACK_SPACE":  selenium.BackspaceKey,
	"TAB":         selenium.TabKey,
	"CLEAR":       selenium.ClearKey,
	"RETURN":      selenium.ReturnKey,
	"ENTER":       selenium.EnterKey,
	"SHIFT":       selenium.ShiftKey,
	"CTRL":        selenium.ControlKey,
	"CONTROL":     selenium.ControlKey,
	"ALT":         selenium.AltKey,
	"PAUSE":       selenium.PauseKey,
	"ESC":         selenium.EscapeKey,
	"ESCAPE":      selenium.EscapeKey,
	"SPACE":       selenium.SpaceKey,
	"PAGE_UP":     selenium.PageUpKey,
	"PAGE_DOWN":   selenium.PageDownKey,
	"END":         selenium.EndKey,
	"HOME":        selenium.HomeKey,
	"LEFT":        selenium.LeftArrowKey,
	"ARROW_LEFT":  selenium.LeftArrowKey,
	"UP":          selenium.UpArrowKey,
	"ARROW_UP":    selenium.UpArrowKey,
	"RIGHT":       selenium.RightArrowKey,
	"ARROW_RIGHT": selenium.RightArrowKey,
	"DOWN":        selenium.DownArrowKey,
	"ARROW_DOWN":  selenium.DownArrowKey,
	"INSERT":      selenium.InsertKey,
	"DELETE":      selenium.DeleteKey,
	"SEMICOLON":   selenium.SemicolonKey,
	"EQUALS":      selenium.EqualsKey,
	"F1":          selenium.F1Key,
	"F2":          selenium.F2Key,
	"F3":          selenium.F3Key,
	"F4":          selenium.F4Key,
	"F5":          selenium.F5Key,
	"F6":          selenium.F6Key,
	"F7":          selenium.F7Key,
	"F8":          selenium.F8Key,
	"F9":          selenium.F9Key,
	"F10":         selenium.F10Key,
	"F11":         selenium.F11Key,
	"F12":         selenium.F12Key,
	"META":        selenium.MetaKey,
	"COMMAND":     selenium.MetaKey,
}

var modifierKeys = map[string]bool{
	selenium.ShiftKey:   true,
	selenium.ControlKey: true,
	selenium.AltKey:     true,
	selenium.MetaKey:    true,
}

// parseModifiers parses modifier key names joined with +, like CTRL+SHIFT
func parseModifiers(s string) ([]string, error) {
	var keys []string
	for _, name := range strings.Split(s, "+") {
		key, ok := namedKeys[strings.ToUpper(strings.TrimSpace(name))]
		if !ok || !modifierKeys[key] {
			return nil, trace.BadParameter("%q is not a modifier key", name)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// parseKey converts a single character, a \NNN ASCII code or a key name
func parseKey(key string) (string, error) {
	if len(key) > 1 && key[0] == '\\' {
		code, err := strconv.Atoi(key[1:])
		if err != nil {
			return "", trace.BadParameter("invalid key code %q", key)
		}
		return string(rune(code)), nil
	}
	if len([]rune(key)) == 1 {
		return key, nil
	}
	if named, ok := namedKeys[strings.ToUpper(key)]; ok {
		return named, nil
	}
	return "", trace.BadParameter("key %q must be a single character, an ASCII code or a key name", key)
}

// parseKeySequence converts a key combination like CTRL+ALT+DELETE into a sequence
// sent with a single call. Parts that are not key names are typed as text.
// Modifiers are released by a trailing null key.
func parseKeySequence(s string) string {
	if s == "+" {
		return s
	}
	parts := strings.Split(s, "+")
	var out strings.Builder
	var modifiers bool
	for _, part := range parts {
		if named, ok := namedKeys[strings.ToUpper(part)]; ok && len(part) > 1 {
			out.WriteString(named)
			if modifierKeys[named] {
				modifiers = true
			}
			continue
		}
		out.WriteString(part)
	}
	if modifiers {
		out.WriteString(selenium.NullKey)
	}
	return out.String()
}

// PressKey simulates the user pressing key on the element
func (l *Library) PressKey(ctx context.Context, loc, key string) error {
	parsed, err := parseKey(key)
	if err != nil {
		return trace.Wrap(err)
	}
	elem, err := l.element(ctx, loc, anyTag)
	if err != nil {
		return trace.Wrap(err)
	}
	return trace.Wrap(elem.SendKeys(parsed))
}

// PressKeys sends key sequences to the element, or to the active element when
// loc is empty. Each sequence is either text or keys joined with +.
func (l *Library) PressKeys(ctx context.Context, loc string, keys ...string) error {
	var elem selenium.WebElement
	if strings.TrimSpace(loc) == "" {
		wd, err := l.current(ctx)
		if err != nil {
			return trace.Wrap(err)
		}
		elem, err = wd.ActiveElement()
		if err != nil {
			return trace.Wrap(err)
		}
	} else {
		var err error
		elem, err = l.element(ctx, loc, anyTag)
		if err != nil {
			return trace.Wrap(err)
		}
		if err := elem.Click(); err != nil {
			return trace.Wrap(err)
		}
	}
	for _, sequence := range keys {
		l.WithField("keys", sequence).Debug("Sending keys.")
		if err := elem.SendKeys(parseKeySequence(sequence)); err != nil {
			return trace.Wrap(err)
		}
	}
	return nil
}
