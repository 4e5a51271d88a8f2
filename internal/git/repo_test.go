package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameStatus(t *testing.T) {
	root := filepath.FromSlash("/repo")
	out := "M\tsrc/a.js\nA\tlib/b.js\nD\told.js\nR100\tx.js\ty.js\n\n"

	changes := parseNameStatus(root, out)

	assert.Equal(t, []Change{
		{Path: filepath.Join(root, "src", "a.js"), Status: "M"},
		{Path: filepath.Join(root, "lib", "b.js"), Status: "A"},
		{Path: filepath.Join(root, "y.js"), Status: "R"},
	}, changes)
}

func TestParseNameStatus_Empty(t *testing.T) {
	assert.Empty(t, parseNameStatus("/repo", ""))
	assert.NotNil(t, parseNameStatus("/repo", ""))
}

func TestRepoRoot_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := RepoRoot(context.Background(), dir)
	assert.Error(t, err)
}

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	if err := exec.Command("git", "-C", dir, "init", "-q").Run(); err != nil {
		t.Skipf("git init failed: %v", err)
	}
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir,
		"-c", "user.name=test", "-c", "user.email=test@example.com",
		"-c", "commit.gpgsign=false"}, args...)...)
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func changedNames(changes []Change) map[string]string {
	names := make(map[string]string, len(changes))
	for _, c := range changes {
		names[filepath.Base(c.Path)] = c.Status
	}
	return names
}

func TestChangedFiles_Untracked(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("var a;"), 0644))

	changes, err := ChangedFiles(context.Background(), dir, true)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestChangedFiles_NoCommits(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("var a;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.js"), []byte("var b;"), 0644))
	gitCmd(t, dir, "add", "b.js")

	changes, err := ChangedFiles(context.Background(), dir, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.js": "?", "b.js": "A"}, changedNames(changes))

	changes, err = ChangedFiles(context.Background(), dir, true)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"b.js": "A"}, changedNames(changes))
}

func TestChangedFiles_AfterCommit(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("var a;"), 0644))
	gitCmd(t, dir, "add", "a.js")
	gitCmd(t, dir, "commit", "-q", "-m", "init")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("var a = 1;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.js"), []byte("var c;"), 0644))

	changes, err := ChangedFiles(context.Background(), dir, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.js": "M", "c.js": "?"}, changedNames(changes))
}
