package webdriver

import (
	"context"
	"testing"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

func TestParseBrowserAliases(t *testing.T) {
	var testCases = []struct {
		name     string
		expected Browser
		headless bool
	}{
		{name: "gc", expected: Chrome},
		{name: "Google Chrome", expected: Chrome},
		{name: "ff", expected: Firefox},
		{name: "IE", expected: InternetExplorer},
		{name: "internet explorer", expected: InternetExplorer},
		{name: "edge", expected: Edge},
		{name: "safari", expected: Safari},
		{name: "generic", expected: Generic},
		{name: "headlesschrome", expected: Chrome, headless: true},
		{name: "HeadlessFirefox", expected: Firefox, headless: true},
	}
	for _, tc := range testCases {
		browser, headless, err := ParseBrowser(tc.name)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.expected, browser, tc.name)
		require.Equal(t, tc.headless, headless, tc.name)
	}
}

func TestParseBrowserRejectsUnsupported(t *testing.T) {
	_, _, err := ParseBrowser("opera")
	require.True(t, trace.IsBadParameter(err))

	_, _, err = ParseBrowser("headlesssafari")
	require.True(t, trace.IsBadParameter(err))
	require.Contains(t, err.Error(), "headless is supported for firefox and chrome only")
}

func TestBuildDefaultCapabilities(t *testing.T) {
	caps, browser, err := BuildCapabilities("ie", nil)
	require.NoError(t, err)
	require.Equal(t, InternetExplorer, browser)
	require.Equal(t, "internet explorer", caps["browserName"])
	require.Equal(t, "WINDOWS", caps["platform"])

	caps, _, err = BuildCapabilities("firefox", nil)
	require.NoError(t, err)
	require.Equal(t, true, caps["acceptInsecureCerts"])
}

func TestBuildDesiredCapabilitiesSelectBrowser(t *testing.T) {
	desired := map[string]interface{}{"browserName": "chrome", "acceptSslCerts": true}
	caps, browser, err := BuildCapabilities("firefox", desired)
	require.NoError(t, err)
	require.Equal(t, Chrome, browser)
	require.Equal(t, true, caps["acceptSslCerts"])
	require.Equal(t, "ANY", caps["platform"])
}

func TestBuildDesiredCapabilitiesRequireBrowserName(t *testing.T) {
	_, _, err := BuildCapabilities("chrome", map[string]interface{}{"platform": "LINUX"})
	require.True(t, trace.IsBadParameter(err))
}

func TestBuildHeadlessIgnoresDesired(t *testing.T) {
	desired := map[string]interface{}{"browserName": "safari"}
	caps, browser, err := BuildCapabilities("headlesschrome", desired)
	require.NoError(t, err)
	require.Equal(t, Chrome, browser)
	require.Equal(t, chrome.Capabilities{Args: []string{"--headless"}}, caps[chrome.CapabilitiesKey])

	caps, browser, err = BuildCapabilities("headlessfirefox", nil)
	require.NoError(t, err)
	require.Equal(t, Firefox, browser)
	require.Equal(t, firefox.Capabilities{Args: []string{"--headless"}}, caps[firefox.CapabilitiesKey])
}

func TestBuildGeneric(t *testing.T) {
	caps, browser, err := BuildCapabilities("generic", map[string]interface{}{"browserName": "chrome"})
	require.NoError(t, err)
	require.Equal(t, Generic, browser)
	require.Nil(t, caps)
}

func TestParseCapabilities(t *testing.T) {
	caps, err := ParseCapabilities("browserName:chrome, acceptInsecureCerts:true, platform:LINUX")
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{
		"browserName":         "chrome",
		"acceptInsecureCerts": true,
		"platform":            "LINUX",
	}, caps)

	caps, err = ParseCapabilities(`{"browserName":"firefox","moz:firefoxOptions":{"args":["-private"]}}`)
	require.NoError(t, err)
	require.Equal(t, "firefox", caps["browserName"])

	caps, err = ParseCapabilities(map[string]string{"enableVNC": "false"})
	require.NoError(t, err)
	require.Equal(t, false, caps["enableVNC"])

	caps, err = ParseCapabilities("")
	require.NoError(t, err)
	require.Nil(t, caps)

	_, err = ParseCapabilities("browserName")
	require.True(t, trace.IsBadParameter(err))

	_, err = ParseCapabilities(42)
	require.True(t, trace.IsBadParameter(err))
}

func TestNewGenericSession(t *testing.T) {
	session, err := NewWithLogger(context.Background(), Config{Browser: "generic"}, logrus.StandardLogger())
	require.NoError(t, err)
	require.True(t, session.IsGeneric())
	require.Nil(t, session.WebDriver)
	require.NoError(t, session.Close())
}
