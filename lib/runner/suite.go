package runner

import (
	"io/ioutil"
	"regexp"
	"strings"

	"github.com/testproject-io/robotkeywords/lib/config"

	"github.com/gravitational/trace"
	"gopkg.in/yaml.v2"
)

// Suite is a list of keyword tests read from a YAML file
type Suite struct {
	// Name names the suite in logs and as ${SUITE_NAME}
	Name string `yaml:"name" validate:"required"`
	// Variables defines the suite variables available as ${name}
	Variables map[string]string `yaml:"variables"`
	// Settings are the named arguments of init_testproject_driver
	Settings map[string]string `yaml:"settings"`
	// SkipInit disables the automatic init_testproject_driver call
	SkipInit bool `yaml:"skip_init"`
	// Setup runs once before the tests
	Setup []Step `yaml:"setup" validate:"dive"`
	// Tests lists the tests in execution order
	Tests []Test `yaml:"tests" validate:"required,min=1,dive"`
	// Teardown runs once after the tests, even when setup failed
	Teardown []Step `yaml:"teardown" validate:"dive"`
}

// Test is a named list of steps
type Test struct {
	Name  string `yaml:"name" validate:"required"`
	Steps []Step `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is a single keyword call
type Step struct {
	// Keyword names the keyword, in any case, with spaces or underscores
	Keyword string `yaml:"keyword" validate:"required"`
	// Args are positional or name=value arguments
	Args []string `yaml:"args"`
	// Assign stores the returned value as a variable, written as ${name} or name
	Assign string `yaml:"assign"`
}

// CheckAndSetDefaults validates the suite
func (r *Suite) CheckAndSetDefaults() error {
	r.Name = strings.TrimSpace(r.Name)
	seen := make(map[string]bool, len(r.Tests))
	for _, test := range r.Tests {
		if seen[test.Name] {
			return trace.BadParameter("duplicate test %q", test.Name)
		}
		seen[test.Name] = true
	}
	for name := range r.Variables {
		if !variableName.MatchString(name) {
			return trace.BadParameter("invalid variable name %q", name)
		}
	}
	for _, steps := range r.stepLists() {
		for i := range steps {
			if steps[i].Assign == "" {
				continue
			}
			name, err := parseAssign(steps[i].Assign)
			if err != nil {
				return trace.Wrap(err)
			}
			steps[i].Assign = name
		}
	}
	return nil
}

func (r *Suite) stepLists() [][]Step {
	lists := [][]Step{r.Setup, r.Teardown}
	for _, test := range r.Tests {
		lists = append(lists, test.Steps)
	}
	return lists
}

// Load reads and validates the suite from the YAML file at path
func Load(path string) (*Suite, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, trace.ConvertSystemError(err)
	}
	suite, err := Parse(data)
	if err != nil {
		return nil, trace.Wrap(err, "failed to load suite from %v", path)
	}
	return suite, nil
}

// Parse decodes and validates a YAML suite.
// Unknown fields are rejected.
func Parse(data []byte) (*Suite, error) {
	var suite Suite
	if err := yaml.UnmarshalStrict(data, &suite); err != nil {
		return nil, trace.BadParameter("invalid suite: %v", err)
	}
	if err := config.CheckAndSetDefaults(&suite); err != nil {
		return nil, trace.Wrap(err)
	}
	return &suite, nil
}

var variableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_ ]*$`)

// parseAssign returns the variable name of an assign target
func parseAssign(target string) (string, error) {
	name := strings.TrimSpace(target)
	if strings.HasPrefix(name, "${") && strings.HasSuffix(name, "}") {
		name = name[2 : len(name)-1]
	}
	if !variableName.MatchString(name) {
		return "", trace.BadParameter("invalid assign target %q", target)
	}
	return name, nil
}

// SetVariables sets suite variables, replacing values of the same
// variable written with a different case, spaces or underscores
func (r *Suite) SetVariables(values map[string]string) {
	if len(values) == 0 {
		return
	}
	if r.Variables == nil {
		r.Variables = make(map[string]string, len(values))
	}
	for name, value := range values {
		for existing := range r.Variables {
			if normalizeVariable(existing) == normalizeVariable(name) {
				delete(r.Variables, existing)
			}
		}
		r.Variables[name] = value
	}
}
