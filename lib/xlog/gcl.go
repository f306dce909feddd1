package xlog

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"regexp"
	"runtime"

	"github.com/gravitational/trace"

	cl "cloud.google.com/go/logging"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

const maxStack = 10

var levelMap = map[logrus.Level]cl.Severity{
	logrus.PanicLevel: cl.Emergency,
	logrus.FatalLevel: cl.Critical,
	logrus.ErrorLevel: cl.Error,
	logrus.WarnLevel:  cl.Warning,
	logrus.InfoLevel:  cl.Info,
	logrus.DebugLevel: cl.Debug,
	logrus.TraceLevel: cl.Debug,
}

// GCLClient mirrors keyword logs into Google Cloud Logging
type GCLClient struct {
	client *cl.Client
}

// Close flushes pending entries and releases the client
func (c *GCLClient) Close() error {
	return trace.Wrap(c.client.Close())
}

// GCLHook is a logrus hook writing entries to a cloud logger
type GCLHook struct {
	log          *cl.Logger
	commonFields logrus.Fields
}

// NewGCLClient establishes connection to google cloud logger.
// credentialsFile is optional, default application credentials are used without it.
func NewGCLClient(ctx context.Context, projectID, credentialsFile string) (*GCLClient, error) {
	if projectID == "" {
		return nil, trace.BadParameter("no cloud logging project ID provided")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		data, err := ioutil.ReadFile(credentialsFile)
		if err != nil {
			return nil, trace.ConvertSystemError(err)
		}
		creds, err := google.CredentialsFromJSON(ctx, data, cl.WriteScope)
		if err != nil {
			return nil, trace.Wrap(err, "Google OAuth failed")
		}
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	}

	client, err := cl.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, trace.Wrap(err)
	}

	if err = client.Ping(ctx); err != nil {
		client.Close()
		return nil, trace.Wrap(err)
	}

	return &GCLClient{client: client}, nil
}

// Hook returns logrus log hook
func (c *GCLClient) Hook(name string, fields logrus.Fields) *GCLHook {
	labels := map[string]string{}
	for k, v := range fields {
		switch v := v.(type) {
		case string:
			labels[k] = v
		default:
			labels[k] = toJSON(v)
		}
	}

	return &GCLHook{
		log:          c.client.Logger(name, cl.CommonLabels(labels)),
		commonFields: fields,
	}
}

func toJSON(obj interface{}) string {
	data, err := json.Marshal(obj)
	if err != nil {
		return fmt.Sprintf("%v", obj)
	}
	return string(data)
}

// Fire fires the event to the GCL
func (hook *GCLHook) Fire(e *logrus.Entry) error {
	severity, ok := levelMap[e.Level]
	if !ok {
		severity = cl.Default
	}

	p := e.WithFields(logrus.Fields{"stack": where(maxStack), "message": e.Message}).Data
	for key := range hook.commonFields {
		delete(p, key)
	}
	for key, value := range p {
		if err, ok := value.(error); ok {
			p[key] = err.Error()
		}
	}

	hook.log.Log(cl.Entry{
		Payload:  p,
		Severity: severity})

	return nil
}

// Levels returns logging levels supported by logrus
func (hook *GCLHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

var exclude = regexp.MustCompile(`github\.com/sirupsen/logrus|/usr/local/go/src|robotkeywords/lib/xlog`)

func where(max int) (stack []string) {
	for i := 3; i <= 10 && len(stack) < max; i++ {
		_, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if !exclude.MatchString(file) {
			stack = append(stack, fmt.Sprintf("%s:%d", shortPath(file), line))
		}
	}
	return stack
}

var shortPackage = regexp.MustCompile(`(\/[a-zA-Z\_]+){1,3}\.go$`)

func shortPath(p string) string {
	if s := shortPackage.FindString(p); s != "" {
		return s
	}
	return p
}
