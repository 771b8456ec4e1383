package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"textunited-client/internal/sandbox"
	"textunited-client/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func startSandbox(t *testing.T) []string {
	t.Helper()
	server := httptest.NewServer(sandbox.NewServer(sandbox.SeedStore(), "2001", "sandbox-key").Handler())
	t.Cleanup(server.Close)
	return []string{"--company-id", "2001", "--api-key", "sandbox-key", "--endpoint", server.URL + "/api/", "--log-level", "error"}
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunProjects(t *testing.T) {
	global := startSandbox(t)

	code, out, errOut := runCLI(t, append(global, "projects")...)

	require.Equal(t, exitOK, code, errOut)
	var projects []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 2)
	assert.Equal(t, float64(testutils.ProjectID), projects[0]["id"])
}

func TestRunProjectYAML(t *testing.T) {
	global := startSandbox(t)

	code, out, errOut := runCLI(t, append(global, "project", "8766", "--output", "yaml")...)

	require.Equal(t, exitOK, code, errOut)
	var project map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &project))
	assert.Equal(t, "WebApplication1", project["name"])
	assert.Equal(t, "In progress", project["status"])
}

func TestRunProjectNotFound(t *testing.T) {
	global := startSandbox(t)

	code, _, errOut := runCLI(t, append(global, "project", "1")...)

	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "project not found with id 1")
}

func TestRunAccount(t *testing.T) {
	global := startSandbox(t)

	code, out, errOut := runCLI(t, append(global, "account", testutils.JaneEmail)...)

	require.Equal(t, exitOK, code, errOut)
	assert.Contains(t, out, `"id": 112000`)
}

func TestRunFilesWithDownload(t *testing.T) {
	global := startSandbox(t)
	dir := t.TempDir()

	code, out, errOut := runCLI(t, append(global, "files", "8766", "--translated", "--out", dir)...)

	require.Equal(t, exitOK, code, errOut)
	content, err := os.ReadFile(filepath.Join(dir, "Resources.resx"))
	require.NoError(t, err)
	assert.Equal(t, testutils.HelloWorld, string(content))
	assert.Contains(t, out, "saved_to")

	_, err = os.Stat(filepath.Join(dir, "subdir", "subdir2", "target", "test.xml"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCreate(t *testing.T) {
	global := startSandbox(t)
	path := filepath.Join(t.TempDir(), "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("dzien dobry"), 0o600))

	code, out, errOut := runCLI(t, append(global, "create",
		"--name", "Greetings", "--source", "en-GB", "--target", "de_de", "--translator", "111999",
		"--end-date", "2030-01-02", "--proofreader", "112000", path)...)

	require.Equal(t, exitOK, code, errOut)
	assert.JSONEq(t, `{"id": "8768"}`, out)
}

func TestRunCreateUnsupportedLanguage(t *testing.T) {
	global := startSandbox(t)
	path := filepath.Join(t.TempDir(), "greeting.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	code, _, errOut := runCLI(t, append(global, "create", "--name", "x", "--source", "pl_pl", "--target", "de_de", path)...)

	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, `"pl_pl" is not supported`)
}

func TestRunLanguagesNeedsNoCredentials(t *testing.T) {
	t.Setenv("TEXTUNITED_COMPANY_ID", "")
	t.Setenv("TEXTUNITED_API_KEY", "")

	code, out, errOut := runCLI(t, "--log-level", "error", "languages")

	require.Equal(t, exitOK, code, errOut)
	var entries []languageEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 13)
	assert.Equal(t, languageEntry{Code: "ar_ae", ID: 21}, entries[0])
}

func TestRunMissingCredentials(t *testing.T) {
	t.Setenv("TEXTUNITED_COMPANY_ID", "")
	t.Setenv("TEXTUNITED_API_KEY", "")

	code, _, errOut := runCLI(t, "--log-level", "error", "projects")

	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "TEXTUNITED_API_KEY")
}

func TestRunUsageErrors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"no command", nil},
		{"unknown command", []string{"deploy"}},
		{"unknown flag", []string{"projects", "--verbose"}},
		{"missing argument", []string{"project"}},
		{"non numeric id", []string{"project", "abc"}},
		{"no files", []string{"create", "--name", "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"--company-id", "2001", "--api-key", "key", "--log-level", "error"}, tc.args...)
			code, _, _ := runCLI(t, args...)
			assert.Equal(t, exitUsage, code)
		})
	}
}

func TestSaveFileRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()
	file := &fileEntry{}
	file.Name = "evil.txt"
	file.Subdir = `..\..\`
	file.TranslatedContent = []byte("x")

	_, err := saveFile(dir, &file.File)

	assert.Error(t, err)
}
