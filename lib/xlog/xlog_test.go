package xlog

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		in       string
		expected logrus.Level
	}{
		{in: "", expected: logrus.InfoLevel},
		{in: "INFO", expected: logrus.InfoLevel},
		{in: "TRACE", expected: logrus.TraceLevel},
		{in: "debug", expected: logrus.DebugLevel},
		{in: "WARN", expected: logrus.WarnLevel},
		{in: "ERROR", expected: logrus.ErrorLevel},
	}
	for _, tc := range testCases {
		lvl, err := ParseLevel(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.expected, lvl, tc.in)
	}

	_, err := ParseLevel("LOUD")
	require.Error(t, err)
}

func TestShortPath(t *testing.T) {
	require.Equal(t, "/lib/keywords/library.go", shortPath("/go/src/github.com/x/lib/keywords/library.go"))
	require.Equal(t, "main", shortPath("main"))
}

func TestConsoleLoggerDoesNotExitOnError(t *testing.T) {
	log := ConsoleLogger(logrus.PanicLevel)
	log.Hooks.Add(&TestingHook{t})
	log.WithField("keyword", "click_element").Error("failed")
}

func TestConsoleHookForwardsTraceEntries(t *testing.T) {
	var out bytes.Buffer
	console := logrus.New()
	console.Out = &out
	console.Level = logrus.TraceLevel
	console.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	log := logrus.New()
	log.Level = logrus.TraceLevel
	log.Out = &bytes.Buffer{}
	log.Hooks.Add(&consoleHook{console, logrus.TraceLevel})

	log.WithField("keyword", "get_text").Trace("resolved locator")
	require.Contains(t, out.String(), "level=trace")
	require.Contains(t, out.String(), `msg="resolved locator"`)
	require.Contains(t, out.String(), "keyword=get_text")

	out.Reset()
	log.Trace("plain")
	require.Contains(t, out.String(), "msg=plain")
}
