package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/career-pulse/internal/assistant"
	"github.com/jonathan/career-pulse/internal/store"
	"github.com/jonathan/career-pulse/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempStorage points the CLI at a fresh file backend with the assistant disabled.
func useTempStorage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("STORAGE_DIR", dir)
	t.Setenv("STORAGE_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	t.Setenv("APP_ENV", "prod")
	return dir
}

// resetFlags restores flag variables, which persist between in-process runs.
func resetFlags() {
	configPath = ""
	servePort = 0
	createSample = false
	showJSON = false
	assistApply = false
	previewHTML = false
	previewOutput = ""
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(t.Context())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, args...)
	require.NoError(t, err, out)
	return out
}

func createResume(t *testing.T, sample bool) string {
	t.Helper()
	args := []string{"resumes", "create"}
	if sample {
		args = append(args, "--sample")
	}
	id := strings.TrimSpace(mustExecute(t, args...))
	require.NotEmpty(t, id)
	return id
}

func showResume(t *testing.T, id string) types.Resume {
	t.Helper()
	out := mustExecute(t, "resumes", "show", id, "--json")
	var r types.Resume
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func TestResumesList_SeedsSample(t *testing.T) {
	dir := useTempStorage(t)

	out := mustExecute(t, "resumes", "list")

	assert.Contains(t, out, "MY RESUMES (1)")
	assert.Contains(t, out, types.SampleResumeName)
	assert.Contains(t, out, "Alex Doe")

	_, err := os.Stat(filepath.Join(dir, store.DefaultKey+".json"))
	assert.NoError(t, err, "seeded data is persisted")
}

func TestResumesCreate(t *testing.T) {
	useTempStorage(t)

	blank := createResume(t, false)
	sample := createResume(t, true)

	out := mustExecute(t, "resumes", "list")
	assert.Contains(t, out, "MY RESUMES (3)")
	assert.Contains(t, out, blank)
	assert.Contains(t, out, sample)
	assert.Contains(t, out, types.BlankResumeName)

	r := showResume(t, sample)
	assert.Equal(t, "Alex Doe", r.PersonalInfo.Name)
	assert.Equal(t, sample, r.ID)
}

func TestResumesShow(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)

	out := mustExecute(t, "resumes", "show", id)

	assert.Contains(t, out, "ID:       "+id)
	assert.Contains(t, out, "Frontend Developer")
}

func TestResumesShow_NotFound(t *testing.T) {
	useTempStorage(t)

	_, err := execute(t, "resumes", "show", "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestResumesRenameAndDelete(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, false)

	mustExecute(t, "resumes", "rename", id, "Data roles")
	assert.Equal(t, "Data roles", showResume(t, id).Name)

	out := mustExecute(t, "resumes", "delete", id)
	assert.Contains(t, out, "Deleted "+id)

	_, err := execute(t, "resumes", "show", id)
	assert.Error(t, err)

	// deleting an unknown resume is not an error
	_, err = execute(t, "resumes", "delete", id)
	assert.NoError(t, err)
}

func TestEditCommands(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)

	mustExecute(t, "edit", "summary", id, "Builds reliable systems.")
	mustExecute(t, "edit", "personal", id, "email", "alex@example.com")
	mustExecute(t, "edit", "bullet-add", id, "0", "Shipped the new editor.")
	mustExecute(t, "edit", "bullet-remove", id, "0", "0")
	mustExecute(t, "edit", "skills-add", id, "Go", "PostgreSQL")

	r := showResume(t, id)
	assert.Equal(t, "Builds reliable systems.", r.Summary)
	assert.Equal(t, "alex@example.com", r.PersonalInfo.Email)
	require.Len(t, r.Experience[0].Description, 3)
	assert.Equal(t, "Shipped the new editor.", r.Experience[0].Description[2])
	require.Len(t, r.Skills, 7)
	assert.Equal(t, "PostgreSQL", r.Skills[6].Name)

	mustExecute(t, "edit", "skill-remove", id, r.Skills[0].ID)
	assert.Len(t, showResume(t, id).Skills, 6)
}

func TestEditCommands_Errors(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown personal field", []string{"edit", "personal", id, "age", "30"}, "age"},
		{"non-integer index", []string{"edit", "bullet-add", id, "first", "x"}, "must be an integer"},
		{"experience out of range", []string{"edit", "bullet-remove", id, "4", "0"}, "out of range"},
		{"unknown resume", []string{"edit", "summary", "missing", "x"}, "resume not found"},
		{"missing args", []string{"edit", "skills-add", id}, "arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAssist_WithoutKeyPrintsPlaceholder(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)
	before := showResume(t, id)

	out := mustExecute(t, "assist", "summary", id, "backend engineer", "--apply")
	assert.Contains(t, out, "(unavailable)")
	assert.Contains(t, out, "API Key not configured")

	out = mustExecute(t, "assist", "skills", id, "--apply")
	assert.Contains(t, out, assistant.UnavailableItem)

	after := showResume(t, id)
	assert.True(t, before.Equal(after), "placeholders are never applied")
}

func TestAssistBullet_IndexOutOfRange(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)

	_, err := execute(t, "assist", "bullet", id, "3", "made things faster")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestPreview(t *testing.T) {
	useTempStorage(t)
	id := createResume(t, true)

	out := mustExecute(t, "preview", id)
	assert.Contains(t, out, "PROFESSIONAL EXPERIENCE")
	assert.Contains(t, out, "Alex Doe")

	out = mustExecute(t, "preview", id, "--html")
	assert.Contains(t, out, `<h1 class="name">Alex Doe</h1>`)

	file := filepath.Join(t.TempDir(), "resume.html")
	out = mustExecute(t, "preview", id, "--html", "-o", file)
	assert.Contains(t, out, "Preview written to")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alex Doe")
}

func TestConfig_InvalidBackend(t *testing.T) {
	useTempStorage(t)
	t.Setenv("STORAGE_BACKEND", "floppy")

	_, err := execute(t, "resumes", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestConfig_FileAndMirror(t *testing.T) {
	dir := useTempStorage(t)
	cfgFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"storage_key": "team"}`), 0644))
	t.Setenv("STORAGE_BACKEND", "memory, file")

	id := strings.TrimSpace(mustExecute(t, "--config", cfgFile, "resumes", "create"))
	require.NotEmpty(t, id)

	// the file backend received the mirrored write under the configured key
	data, err := os.ReadFile(filepath.Join(dir, "team.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), id)
}
