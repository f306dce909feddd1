package keywords

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gravitational/trace"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
)

func TestBind(t *testing.T) {
	params := parseParams("locator text clear:bool=True *rest")
	tests := []struct {
		comment string
		raw     []string
		values  map[string]string
		rest    []string
	}{
		{
			comment: "positional",
			raw:     []string{"id:name", "bob"},
			values:  map[string]string{"locator": "id:name", "text": "bob", "clear": "True"},
		},
		{
			comment: "named",
			raw:     []string{"id:name", "clear=False", "text=bob"},
			values:  map[string]string{"locator": "id:name", "text": "bob", "clear": "False"},
		},
		{
			comment: "unknown names are positional",
			raw:     []string{"name=user", "a=b"},
			values:  map[string]string{"locator": "name=user", "text": "a=b", "clear": "True"},
		},
		{
			comment: "escaped equals sign",
			raw:     []string{`text\=x`, "y", "No", "extra", "more"},
			values:  map[string]string{"locator": "text=x", "text": "y", "clear": "No"},
			rest:    []string{"extra", "more"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.comment, func(t *testing.T) {
			a, err := bind(params, tt.raw)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.values, a.values); diff != "" {
				t.Errorf("unexpected values (-want +got):\n%s", diff)
			}
			require.Equal(t, tt.rest, a.rest)
		})
	}
}

func TestBindErrors(t *testing.T) {
	_, err := bind(parseParams("locator text"), []string{"id:name"})
	require.True(t, trace.IsBadParameter(err))

	_, err = bind(parseParams("locator"), []string{"id:a", "id:b"})
	require.True(t, trace.IsBadParameter(err))

	_, err = bind(parseParams("locator"), []string{"locator=id:a", "locator=id:b"})
	require.True(t, trace.IsBadParameter(err))

	_, err = bind(parseParams("locator row:int"), []string{"id:t", "first"})
	require.True(t, trace.IsBadParameter(err))

	_, err = bind(parseParams("timeout:duration="), []string{"forever"})
	require.True(t, trace.IsBadParameter(err))
}

func TestArgConversions(t *testing.T) {
	a, err := bind(parseParams("flag:bool=False off:bool=True timeout:duration= ms:millis= limit:limit= n:int"),
		[]string{"yes", "OFF", "1 min 30 s", "1500", "None", "-2"})
	require.NoError(t, err)
	require.True(t, a.flag("flag"))
	require.False(t, a.flag("off"))
	require.Equal(t, 90*time.Second, a.duration("timeout"))
	require.Equal(t, 1500*time.Millisecond, a.millis("ms"))
	require.Equal(t, -1, a.limit("limit", -1))
	require.Equal(t, -2, a.number("n"))
}

func TestRunByName(t *testing.T) {
	go1 := &fakeElement{}
	field := &fakeElement{}
	wd := newFakeDriver().
		on(selenium.ByID, "go", go1).
		on(selenium.ByID, "name", field).
		on(selenium.ByID, "greeting", &fakeElement{text: "hello"})
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, wd, reporter)
	ctx := context.Background()

	for _, name := range []string{"Click Element", "click_element", "ClickElement"} {
		_, err := l.Run(ctx, name, "id:go")
		require.NoError(t, err)
	}
	require.Equal(t, 3, go1.clicks)

	_, err := l.Run(ctx, "Input Text", "id:name", "bob", "clear=False")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, field.keys)

	value, err := l.Run(ctx, "Get Text", "id:greeting")
	require.NoError(t, err)
	require.Equal(t, "hello", value)
}

func TestRunErrors(t *testing.T) {
	reporter := &fakeReporter{}
	l, _ := newLibrary(t, newFakeDriver(), reporter)
	ctx := context.Background()

	_, err := l.Run(ctx, "No Such Keyword")
	require.True(t, trace.IsNotFound(err))
	require.Empty(t, reporter.steps)

	_, err = l.Run(ctx, "Get Table Cell", "id:table", "first", "1")
	require.True(t, trace.IsBadParameter(err), "expected bad parameter, got %v", err)
	require.Len(t, reporter.steps, 1)
	require.Equal(t, "Get Table Cell: id:table first 1", reporter.steps[0].Description)
	require.False(t, reporter.steps[0].Passed)
}

func TestKeywordsAreListed(t *testing.T) {
	l, _ := newLibrary(t, nil, nil)
	infos := l.Keywords()
	require.True(t, len(infos) > 150)
	var found bool
	for _, info := range infos {
		if info.Name == "Select From List By Value" {
			require.Equal(t, "locator *values", info.Args)
			found = true
		}
	}
	require.True(t, found)
}
