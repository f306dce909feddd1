package version

import (
	"os"
	"testing"

	"github.com/testproject-io/robotkeywords/lib/constants"

	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
)

func TestGetPrefersBuildVersion(t *testing.T) {
	defer setVersion("1.2.3")()
	os.Setenv(constants.EnvLibVersion, "9.9.9")
	defer os.Unsetenv(constants.EnvLibVersion)

	v, err := Get()
	require.NoError(t, err)
	require.Equal(t, "1.2.3", v)
}

func TestGetFallsBackToEnvironment(t *testing.T) {
	defer setVersion("")()
	os.Setenv(constants.EnvLibVersion, "0.63.19")
	defer os.Unsetenv(constants.EnvLibVersion)

	v, err := Get()
	require.NoError(t, err)
	require.Equal(t, "0.63.19", v)
}

func TestGetWithoutVersion(t *testing.T) {
	defer setVersion("")()
	os.Unsetenv(constants.EnvLibVersion)

	_, err := Get()
	require.True(t, trace.IsNotFound(err), "expected not found, got %v", err)
}

func TestGetRejectsGarbage(t *testing.T) {
	defer setVersion("latest")()

	_, err := Get()
	require.True(t, trace.IsBadParameter(err), "expected bad parameter, got %v", err)
}

func TestCheck(t *testing.T) {
	require.NoError(t, Check("0.65.0", ">= 0.64.0"))
	require.True(t, trace.IsCompareFailed(Check("0.60.1", ">= 0.64.0")))
	require.True(t, trace.IsBadParameter(Check("x", ">= 0.64.0")))
	require.True(t, trace.IsBadParameter(Check("1.0.0", "~~1")))
}

func setVersion(v string) func() {
	prev := Version
	Version = v
	return func() { Version = prev }
}
