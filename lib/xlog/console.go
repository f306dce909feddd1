package xlog

import (
	"io/ioutil"
	"os"
	"strings"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// ConsoleLogger returns logger which writes everything to hooks plus console for events above certain level
func ConsoleLogger(consoleLevel logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.Level = logrus.TraceLevel
	log.Out = ioutil.Discard

	consoleLog := logrus.New()
	consoleLog.Out = os.Stderr
	consoleLog.Level = consoleLevel
	consoleLog.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	log.Hooks.Add(&consoleHook{consoleLog, consoleLevel})

	return log
}

// ParseLevel maps the keyword log level names (TRACE, DEBUG, INFO, WARN, ERROR)
// as well as logrus level names to a logrus level
func ParseLevel(level string) (logrus.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "", "INFO", "HTML":
		return logrus.InfoLevel, nil
	case "WARN":
		return logrus.WarnLevel, nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return lvl, trace.BadParameter("unknown log level %q", level)
	}
	return lvl, nil
}

type consoleHook struct {
	console *logrus.Logger
	level   logrus.Level
}

func (hook *consoleHook) Fire(e *logrus.Entry) error {
	if e.Level > hook.level {
		return nil
	}

	log := hook.console.WithFields(e.Data)

	switch e.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		// never panic or exit from a hook
		log.Error(e.Message)
	case logrus.WarnLevel:
		log.Warn(e.Message)
	case logrus.InfoLevel:
		log.Info(e.Message)
	case logrus.DebugLevel:
		log.Debug(e.Message)
	case logrus.TraceLevel:
		log.Trace(e.Message)
	}

	return nil
}

// Levels returns logging levels supported by logrus
func (hook *consoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
