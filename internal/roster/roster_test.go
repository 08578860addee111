package roster

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/appengine-ltd/gift-exchange/internal/pairing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "participants.json", `{
  "title": "office",
  "participants": [
    {"name": "Ann", "passwordHash": "abc"},
    {"name": "Ben"},
    {"name": "Cy"}
  ],
  "exclusions": [["Ann", "Ben"], ["Ann", "Ben"]]
}`)

	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Ben", "Cy"}, ds.Names())
	assert.Equal(t, "abc", ds.Participants[0].PasswordHash)

	set := ds.ExclusionSet()
	assert.Equal(t, 1, set.Len())
	assert.True(t, set.Excludes("Ann", "Ben"))
	assert.False(t, set.Excludes("Ben", "Ann"))
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "participants.yaml", `participants:
  - name: Ann
  - name: Ben
exclusions:
  - [Ann, Ben]
`)
	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Ben"}, ds.Names())
	assert.True(t, ds.ExclusionSet().Excludes("Ann", "Ben"))
}

func TestLoadWithoutExclusions(t *testing.T) {
	path := writeFile(t, "participants.json", `{"participants":[{"name":"Ann"},{"name":"Ben"}]}`)
	ds, err := Load(path, LoadOptions{})
	require.NoError(t, err)
	assert.Zero(t, ds.ExclusionSet().Len())
}

func TestReadSkipsValidation(t *testing.T) {
	path := writeFile(t, "participants.json", `{"participants":[{"name":"Ann"}]}`)
	ds, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann"}, ds.Names())

	_, err = Load(path, LoadOptions{})
	require.ErrorIs(t, err, pairing.ErrInvalidInput)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "too few", body: `{"participants":[{"name":"Ann"}]}`},
		{name: "missing name", body: `{"participants":[{"name":"Ann"},{"passwordHash":"x"}]}`},
		{name: "duplicate", body: `{"participants":[{"name":"Ann"},{"name":"Ann"}]}`},
		{name: "short exclusion", body: `{"participants":[{"name":"Ann"},{"name":"Ben"}],"exclusions":[["Ann"]]}`},
		{name: "long exclusion", body: `{"participants":[{"name":"Ann"},{"name":"Ben"}],"exclusions":[["Ann","Ben","Cy"]]}`},
		{name: "empty exclusion name", body: `{"participants":[{"name":"Ann"},{"name":"Ben"}],"exclusions":[["Ann",""]]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, "participants.json", tc.body)
			_, err := Load(path, LoadOptions{})
			require.ErrorIs(t, err, pairing.ErrInvalidInput)
		})
	}
}

func TestUnknownExclusionNameWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	ds, err := Parse([]byte(`{"participants":[{"name":"Alice"},{"name":"Bob"}],"exclusions":[["Alcie","Bob"]]}`), FormatJSON)
	require.NoError(t, err)

	require.NoError(t, ds.Validate(LoadOptions{Logger: zap.New(core)}))
	require.Equal(t, 1, logs.Len())
	assert.Contains(t, logs.All()[0].Message, `did you mean "Alice"?`)
}

func TestUnknownExclusionNameStrict(t *testing.T) {
	ds, err := Parse([]byte(`{"participants":[{"name":"Alice"},{"name":"Bob"}],"exclusions":[["Zed","Bob"]]}`), FormatJSON)
	require.NoError(t, err)

	err = ds.Validate(LoadOptions{Strict: true})
	require.ErrorIs(t, err, pairing.ErrInvalidInput)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestSuggest(t *testing.T) {
	names := []string{"Alice", "Bob", "Christopher"}
	tests := []struct {
		in   string
		want string
	}{
		{in: "alice", want: "Alice"},
		{in: "Alcie", want: "Alice"},
		{in: "Bobb", want: "Bob"},
		{in: "Christofer", want: "Christopher"},
		{in: "Zed", want: ""},
		{in: "  ", want: ""},
	}
	for _, tc := range tests {
		if got := Suggest(tc.in, names); got != tc.want {
			t.Fatalf("Suggest(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}
