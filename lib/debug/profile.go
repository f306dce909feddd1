package debug

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/sirupsen/logrus"
)

// StartProfiling serves the pprof endpoints on httpEndpoint in background
func StartProfiling(httpEndpoint string, log logrus.FieldLogger) {
	log.Infof("[PROFILING] http %v", httpEndpoint)

	go func() {
		log.Warn(http.ListenAndServe(httpEndpoint, nil))
	}()
}
