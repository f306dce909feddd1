package webdriver

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gravitational/trace"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Browser names a browser family using the WebDriver browserName value
type Browser string

const (
	// Chrome is Google Chrome
	Chrome Browser = "chrome"
	// Firefox is Mozilla Firefox
	Firefox Browser = "firefox"
	// InternetExplorer is Microsoft Internet Explorer
	InternetExplorer Browser = "internet explorer"
	// Edge is Microsoft Edge
	Edge Browser = "MicrosoftEdge"
	// Safari is Apple Safari
	Safari Browser = "safari"
	// Generic is a session without a browser
	Generic Browser = "generic"
)

var browserNames = map[string]Browser{
	"googlechrome":     Chrome,
	"chrome":           Chrome,
	"gc":               Chrome,
	"firefox":          Firefox,
	"ff":               Firefox,
	"internetexplorer": InternetExplorer,
	"ie":               InternetExplorer,
	"edge":             Edge,
	"microsoftedge":    Edge,
	"safari":           Safari,
	"generic":          Generic,
}

const headlessPrefix = "headless"

// ParseBrowser resolves a browser name or alias. Names prefixed with "headless"
// are only accepted for chrome and firefox.
func ParseBrowser(name string) (browser Browser, headless bool, err error) {
	normalized := strings.ToLower(strings.Replace(strings.TrimSpace(name), " ", "", -1))
	if strings.HasPrefix(normalized, headlessPrefix) {
		switch strings.TrimPrefix(normalized, headlessPrefix) {
		case "chrome":
			return Chrome, true, nil
		case "firefox":
			return Firefox, true, nil
		}
		return "", false, trace.BadParameter("headless is supported for firefox and chrome only")
	}
	browser, ok := browserNames[normalized]
	if !ok {
		return "", false, trace.BadParameter("unsupported browser %q", name)
	}
	return browser, false, nil
}

// BuildCapabilities returns the capabilities to start browserName with.
//
// When desired carries capabilities, its browserName selects the browser and every
// entry is copied over the browser defaults. Headless browsers ignore desired and
// start from a clean set with the --headless argument.
func BuildCapabilities(browserName string, desired map[string]interface{}) (selenium.Capabilities, Browser, error) {
	browser, headless, err := ParseBrowser(browserName)
	if err != nil {
		return nil, "", trace.Wrap(err)
	}
	if browser == Generic {
		return nil, Generic, nil
	}
	if headless {
		caps := defaultCapabilities(browser)
		switch browser {
		case Chrome:
			caps.AddChrome(chrome.Capabilities{Args: []string{"--headless"}})
		case Firefox:
			caps.AddFirefox(firefox.Capabilities{Args: []string{"--headless"}})
		}
		return caps, browser, nil
	}
	if len(desired) == 0 {
		return defaultCapabilities(browser), browser, nil
	}

	name, ok := desired["browserName"].(string)
	if !ok || name == "" {
		return nil, "", trace.BadParameter("no browser name capability was set")
	}
	browser, _, err = ParseBrowser(name)
	if err != nil {
		return nil, "", trace.Wrap(err)
	}
	caps := defaultCapabilities(browser)
	for k, v := range desired {
		caps[k] = v
	}
	caps["browserName"] = string(browser)
	return caps, browser, nil
}

func defaultCapabilities(browser Browser) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": string(browser)}
	switch browser {
	case Firefox:
		caps["acceptInsecureCerts"] = true
	case Chrome:
		caps["version"] = ""
		caps["platform"] = "ANY"
	case InternetExplorer:
		caps["version"] = ""
		caps["platform"] = "WINDOWS"
	case Edge:
		caps["version"] = ""
		caps["platform"] = "ANY"
	case Safari:
		caps["version"] = ""
		caps["platform"] = "MAC"
	}
	return caps
}

// ParseCapabilities accepts capabilities as a JSON object, a string in the
// "key:value,key2:value2" form or a map. Empty input results in no capabilities.
func ParseCapabilities(in interface{}) (map[string]interface{}, error) {
	switch caps := in.(type) {
	case nil:
		return nil, nil
	case map[string]interface{}:
		return caps, nil
	case map[string]string:
		out := make(map[string]interface{}, len(caps))
		for k, v := range caps {
			out[k] = parseValue(v)
		}
		return out, nil
	case string:
		return parseCapabilityString(caps)
	}
	return nil, trace.BadParameter("unsupported capabilities type %T", in)
}

func parseCapabilityString(s string) (map[string]interface{}, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	out := map[string]interface{}{}
	if strings.HasPrefix(s, "{") {
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, trace.BadParameter("invalid capabilities %q: %v", s, err)
		}
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 || strings.TrimSpace(kv[0]) == "" {
			return nil, trace.BadParameter("expected key:value capability, got %q", part)
		}
		out[strings.TrimSpace(kv[0])] = parseValue(strings.TrimSpace(kv[1]))
	}
	return out, nil
}

func parseValue(v string) interface{} {
	if b, err := strconv.ParseBool(v); err == nil && (strings.EqualFold(v, "true") || strings.EqualFold(v, "false")) {
		return b
	}
	return v
}
