package version

import (
	"os"

	"github.com/testproject-io/robotkeywords/lib/constants"

	"github.com/gravitational/trace"
	semver "github.com/hashicorp/go-version"
)

// Version is the library version, set at build time with
// -ldflags "-X github.com/testproject-io/robotkeywords/lib/version.Version=x.y.z"
var Version string

// Get returns the current library version.
// The build time version takes precedence over the TP_ROBOT_LIB_VERSION environment variable.
func Get() (string, error) {
	v := Version
	if v == "" {
		v = os.Getenv(constants.EnvLibVersion)
	}
	if v == "" {
		return "", trace.NotFound("no library version definition found in build info or %v", constants.EnvLibVersion)
	}
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return "", trace.BadParameter("expected a version in semver format, got %q", v)
	}
	return parsed.String(), nil
}

// Check verifies that version satisfies the constraint, e.g. ">= 0.64.0"
func Check(version, constraint string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return trace.BadParameter("expected a version in semver format, got %q", version)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return trace.BadParameter("invalid version constraint %q: %v", constraint, err)
	}
	if !c.Check(v) {
		return trace.CompareFailed("version %v does not satisfy %q", v, constraint)
	}
	return nil
}
