package runner

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gravitational/trace"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"
)

type call struct {
	keyword string
	args    []string
}

type ended struct {
	name    string
	passed  bool
	message string
}

// fakeLibrary records keyword calls. Keywords listed in failures fail with
// the given message, keywords listed in values return the given value.
type fakeLibrary struct {
	calls    []call
	ended    []ended
	failures map[string]string
	values   map[string]interface{}
	cancel   context.CancelFunc
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{failures: map[string]string{}, values: map[string]interface{}{}}
}

func (l *fakeLibrary) Run(_ context.Context, name string, args ...string) (interface{}, error) {
	l.calls = append(l.calls, call{keyword: name, args: args})
	if name == "interrupt" && l.cancel != nil {
		l.cancel()
	}
	if message, ok := l.failures[name]; ok {
		return nil, trace.BadParameter(message)
	}
	return l.values[name], nil
}

func (l *fakeLibrary) EndTest(_ context.Context, name string, passed bool, message string) {
	l.ended = append(l.ended, ended{name: name, passed: passed, message: message})
}

func (l *fakeLibrary) keywords() (out []string) {
	for _, c := range l.calls {
		out = append(out, c.keyword)
	}
	return out
}

func newTestLogger() logrus.FieldLogger {
	log := logrus.New()
	log.Out = GinkgoWriter
	log.Level = logrus.DebugLevel
	return log
}

func ticker() func() time.Time {
	now := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	return func() time.Time {
		now = now.Add(time.Second)
		return now
	}
}

func mustParse(data string) *Suite {
	suite, err := Parse([]byte(data))
	Expect(err).NotTo(HaveOccurred())
	return suite
}

const loginSuite = `
name: Login
variables:
  user: admin
settings:
  browser: chrome
  url: http://localhost:8080
  dev_token: "%{TP_RUNNER_TEST_TOKEN}"
setup:
  - keyword: maximize_browser_window
tests:
  - name: Sign in
    steps:
      - keyword: input_text
        args: ["id:user", "${user}"]
      - keyword: get_text
        args: ["id:greeting"]
        assign: ${greeting}
      - keyword: Should Be Equal
        args: ["${greeting}", "Hello ${user} from ${TEST_NAME}"]
  - name: Sign out
    steps:
      - keyword: click_button
        args: ["id:logout"]
teardown:
  - keyword: close_all_browsers
`

var _ = Describe("Suite", func() {
	It("parses and normalizes assign targets", func() {
		suite := mustParse(loginSuite)
		Expect(suite.Name).To(Equal("Login"))
		Expect(suite.Tests).To(HaveLen(2))
		Expect(suite.Tests[0].Steps[1].Assign).To(Equal("greeting"))
	})

	It("rejects invalid suites", func() {
		for _, data := range []string{
			"name: empty\n",
			"tests:\n  - name: t\n    steps:\n      - keyword: go_to\n",
			"name: s\ntests:\n  - name: t\n",
			"name: s\ntests:\n  - name: t\n    steps:\n      - args: [x]\n",
			"name: s\ntests:\n  - name: t\n    steps:\n      - keyword: go_to\n        assign: ${}\n",
			"name: s\nunknown: field\ntests:\n  - name: t\n    steps:\n      - keyword: go_to\n",
			"name: s\ntests:\n  - name: t\n    steps:\n      - keyword: a\n  - name: t\n    steps:\n      - keyword: b\n",
		} {
			_, err := Parse([]byte(data))
			Expect(trace.IsBadParameter(err)).To(BeTrue(), "expected bad parameter for %q, got %v", data, err)
		}
	})

	It("loads suites from files", func() {
		dir, err := ioutil.TempDir("", "runner")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)

		path := filepath.Join(dir, "login.yaml")
		Expect(ioutil.WriteFile(path, []byte(loginSuite), 0644)).To(Succeed())
		suite, err := Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(suite.Name).To(Equal("Login"))

		_, err = Load(filepath.Join(dir, "missing.yaml"))
		Expect(trace.IsNotFound(err)).To(BeTrue())
	})
})

var _ = Describe("Variables", func() {
	vars := newVariables(map[string]string{"Base URL": "http://example.com"})

	It("expands variables ignoring case, spaces and underscores", func() {
		Expect(vars.expand("${base_url}/login")).To(Equal("http://example.com/login"))
		Expect(vars.expand("[${EMPTY}]")).To(Equal("[]"))
		Expect(vars.expand("a${SPACE}b")).To(Equal("a b"))
	})

	It("keeps escaped placeholders", func() {
		Expect(vars.expand(`\${base_url}`)).To(Equal("${base_url}"))
	})

	It("fails on missing variables", func() {
		_, err := vars.expand("${missing} and %{TP_RUNNER_MISSING_VARIABLE}")
		Expect(trace.IsNotFound(err)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("${missing}"))
		Expect(err.Error()).To(ContainSubstring("%{TP_RUNNER_MISSING_VARIABLE}"))
	})

	It("formats keyword results", func() {
		Expect(stringValue(nil)).To(Equal(""))
		Expect(stringValue([]string{"a", "b"})).To(Equal("a\nb"))
		Expect(stringValue(3)).To(Equal("3"))
		Expect(stringValue(true)).To(Equal("true"))
	})
})

var _ = Describe("Runner", func() {
	var (
		library *fakeLibrary
		runner  *Runner
		ctx     context.Context
	)

	BeforeEach(func() {
		os.Setenv("TP_RUNNER_TEST_TOKEN", "secret")
		library = newFakeLibrary()
		library.values["get_text"] = "Hello admin from Sign in"
		var err error
		runner, err = New(Config{Library: library, Clock: ticker(), FieldLogger: newTestLogger()})
		Expect(err).NotTo(HaveOccurred())
		ctx = context.Background()
	})

	AfterEach(func() {
		os.Unsetenv("TP_RUNNER_TEST_TOKEN")
	})

	It("requires a library", func() {
		_, err := New(Config{})
		Expect(trace.IsBadParameter(err)).To(BeTrue())
	})

	It("runs init, setup, tests and teardown in order", func() {
		result, err := runner.Run(ctx, *mustParse(loginSuite))
		Expect(err).NotTo(HaveOccurred())
		Expect(library.keywords()).To(Equal([]string{
			InitKeyword,
			"maximize_browser_window",
			"input_text",
			"get_text",
			"Should Be Equal",
			"click_button",
			"close_all_browsers",
		}))
		Expect(library.calls[0].args).To(Equal([]string{
			"browser=chrome",
			"dev_token=secret",
			"url=http://localhost:8080",
		}))
		Expect(library.calls[2].args).To(Equal([]string{"id:user", "admin"}))
		Expect(library.calls[4].args).To(Equal([]string{"Hello admin from Sign in", "Hello admin from Sign in"}))
		Expect(library.ended).To(Equal([]ended{
			{name: "Sign in", passed: true},
			{name: "Sign out", passed: true},
		}))
		Expect(result.Failed()).To(Equal(0))
		Expect(result.Tests[0].Duration).To(Equal(time.Second))
	})

	It("stops a test at the first failure and keeps running the others", func() {
		library.failures["input_text"] = "element with locator \"id:user\" not found"
		result, err := runner.Run(ctx, *mustParse(loginSuite))
		Expect(trace.IsCompareFailed(err)).To(BeTrue(), "got %v", err)
		Expect(library.keywords()).NotTo(ContainElement("get_text"))
		Expect(library.keywords()).To(ContainElement("click_button"))
		Expect(library.ended).To(Equal([]ended{
			{name: "Sign in", passed: false, message: "element with locator \"id:user\" not found"},
			{name: "Sign out", passed: true},
		}))
		Expect(result.Failed()).To(Equal(1))
	})

	It("keeps assigned variables local to the test", func() {
		suite := mustParse(`
name: Scopes
skip_init: true
tests:
  - name: first
    steps:
      - keyword: get_text
        args: ["id:x"]
        assign: text
  - name: second
    steps:
      - keyword: log
        args: ["${text}"]
`)
		_, err := runner.Run(ctx, *suite)
		Expect(trace.IsCompareFailed(err)).To(BeTrue(), "got %v", err)
		Expect(library.keywords()).To(Equal([]string{"get_text"}))
		Expect(library.ended[1].passed).To(BeFalse())
		Expect(library.ended[1].message).To(ContainSubstring("${text}"))
	})

	It("shares setup variables with the tests", func() {
		suite := mustParse(`
name: Shared
skip_init: true
setup:
  - keyword: get_title
    assign: title
tests:
  - name: uses title
    steps:
      - keyword: title_should_be
        args: ["${title}"]
`)
		library.values["get_title"] = "Home"
		_, err := runner.Run(ctx, *suite)
		Expect(err).NotTo(HaveOccurred())
		Expect(library.calls[1].args).To(Equal([]string{"Home"}))
	})

	It("skips tests but runs teardown when setup fails", func() {
		library.failures[InitKeyword] = "failed to open http://localhost:8080"
		result, err := runner.Run(ctx, *mustParse(loginSuite))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("suite setup failed"))
		Expect(library.keywords()).To(Equal([]string{InitKeyword, "close_all_browsers"}))
		Expect(library.ended).To(BeEmpty())
		Expect(result.Failed()).To(Equal(2))
		for _, test := range result.Tests {
			Expect(test.Skipped).To(BeTrue())
		}
	})

	It("runs every teardown step even when one fails", func() {
		suite := mustParse(`
name: Teardown
skip_init: true
tests:
  - name: noop
    steps:
      - keyword: no_operation
teardown:
  - keyword: delete_all_cookies
  - keyword: close_all_browsers
`)
		library.failures["delete_all_cookies"] = "no browser is open"
		result, err := runner.Run(ctx, *suite)
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("suite teardown failed"))
		Expect(library.keywords()).To(ContainElement("close_all_browsers"))
		Expect(result.Failed()).To(Equal(0))
	})

	It("skips the remaining tests but runs teardown when interrupted", func() {
		suite := mustParse(`
name: Interrupted
skip_init: true
tests:
  - name: first
    steps:
      - keyword: interrupt
      - keyword: never_run
  - name: second
    steps:
      - keyword: never_run
teardown:
  - keyword: close_all_browsers
`)
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		library.cancel = cancel
		result, err := runner.Run(ctx, *suite)
		Expect(err).To(HaveOccurred())
		Expect(library.keywords()).To(Equal([]string{"interrupt", "close_all_browsers"}))
		Expect(result.Tests[0].Passed).To(BeFalse())
		Expect(result.Tests[1].Skipped).To(BeTrue())
		Expect(strings.Contains(result.Tests[1].Message, "interrupted")).To(BeTrue())
	})
})
