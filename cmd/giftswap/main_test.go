package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/gift-exchange/internal/pairing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeDataset(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVerifyPasses(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"A"},{"name":"B"},{"name":"C"}]}`)
	report := filepath.Join(t.TempDir(), "pairings_log.txt")

	out, err := runCLI(t, "verify", "-d", ds, "-o", report, "-n", "2", "-w", "2", "--dispersion")
	require.NoError(t, err)
	assert.Contains(t, out, "Tested 2 seeds: 2 passed, 0 failed")
	assert.Contains(t, out, "All seeds passed successfully!")
	assert.Contains(t, out, "Dispersion over 2 seeds")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Equal(t, "Seed: seed_0\n  A → C\n  B → A\n  C → B\n\nSeed: seed_1\n  A → C\n  B → A\n  C → B", string(data))
}

func TestVerifyReportsFailures(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"A"},{"name":"B"}],"exclusions":[["A","B"],["B","A"]]}`)
	report := filepath.Join(t.TempDir(), "pairings_log.txt")

	out, err := runCLI(t, "verify", "-d", ds, "-o", report, "-n", "2", "--max-attempts", "5")
	require.Error(t, err)
	assert.Equal(t, exitSeedFailures, exitCode(err))
	assert.ErrorIs(t, err, errSeedFailures)
	assert.Contains(t, out, "Some seeds failed:")
	assert.Contains(t, out, "seed_1")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Seed seed_0 FAILED: could not find valid pairing after 6 attempts")
}

func TestVerifyRejectsInvalidDataset(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"A"}]}`)

	_, err := runCLI(t, "verify", "-d", ds, "-o", filepath.Join(t.TempDir(), "r.txt"))
	require.Error(t, err)
	assert.Equal(t, exitInvalidInput, exitCode(err))
	assert.ErrorIs(t, err, pairing.ErrInvalidInput)
}

func TestVerifyStrictUnknownName(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"Ann"},{"name":"Ben"}],"exclusions":[["Anne","Ben"]]}`)

	_, err := runCLI(t, "verify", "-d", ds, "--strict", "-o", filepath.Join(t.TempDir(), "r.txt"))
	require.Error(t, err)
	assert.Equal(t, exitInvalidInput, exitCode(err))
	assert.Contains(t, err.Error(), `did you mean "Ann"?`)
}

func TestPair(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"A"},{"name":"B"},{"name":"C"}],"exclusions":[["A","C"]]}`)
	jsonOut := filepath.Join(t.TempDir(), "assignment.json")

	out, err := runCLI(t, "pair", "-d", ds, "--seed", "seed_0", "--out", jsonOut)
	require.NoError(t, err)
	assert.Equal(t, "Seed: seed_0\n  A → B\n  B → C\n  C → A\n", out)

	data, err := os.ReadFile(jsonOut)
	require.NoError(t, err)
	var got pairing.Assignment
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]string{"A": "B", "B": "C", "C": "A"}, got.Map())
	assert.Equal(t, 10, got.Attempts)
}

func TestPairRequiresSeed(t *testing.T) {
	ds := writeDataset(t, `{"participants":[{"name":"A"},{"name":"B"}]}`)
	_, err := runCLI(t, "pair", "-d", ds)
	require.Error(t, err)
}

func TestHash(t *testing.T) {
	out, err := runCLI(t, "hash", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n", out)

	// Debug logging goes to stderr, never into the digest output.
	out, err = runCLI(t, "hash", "-v", "abc")
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad\n", out)
}

func TestHashPasswords(t *testing.T) {
	dir := t.TempDir()
	pw := filepath.Join(dir, "passwords.json")
	require.NoError(t, os.WriteFile(pw, []byte(`[{"name":"A","password":"abc"},{"name":"B","password":"x"}]`), 0o600))
	outPath := filepath.Join(dir, "participants.json")

	out, err := runCLI(t, "hash-passwords", pw, outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 participants)")

	_, err = runCLI(t, "pair", "-d", outPath, "-s", "seed_0")
	require.NoError(t, err)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitInternal, exitCode(errors.New("boom")))
	assert.Equal(t, exitInvalidInput, exitCode(withExit(exitInvalidInput, errors.New("bad"))))
	assert.Nil(t, withExit(exitInternal, nil))
}
