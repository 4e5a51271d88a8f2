package git

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Change is a file reported by git as changed.
type Change struct {
	Path   string // absolute
	Status string // A(dded), M(odified), R(enamed), ...
}

// RepoRoot returns the top-level directory of the git repository containing dir.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}
	return strings.TrimSpace(out), nil
}

// ChangedFiles lists files changed in the working tree of the repository
// containing dir. With staged set only index changes are listed.
// In a repository without commits every staged and untracked file counts
// as changed. Deleted files are skipped.
func ChangedFiles(ctx context.Context, dir string, staged bool) ([]Change, error) {
	root, err := RepoRoot(ctx, dir)
	if err != nil {
		return nil, err
	}

	args := []string{"diff", "--name-status"}
	if staged || !hasHead(ctx, root) {
		args = append(args, "--cached")
	} else {
		args = append(args, "HEAD")
	}

	out, err := run(ctx, root, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get git changes: %w", err)
	}
	changes := parseNameStatus(root, out)

	if !staged {
		untracked, err := run(ctx, root, "ls-files", "--others", "--exclude-standard")
		if err != nil {
			return nil, fmt.Errorf("failed to list untracked files: %w", err)
		}
		for _, line := range strings.Split(untracked, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				changes = append(changes, Change{Path: filepath.Join(root, filepath.FromSlash(line)), Status: "?"})
			}
		}
	}

	return changes, nil
}

// hasHead reports whether HEAD resolves to a commit.
func hasHead(ctx context.Context, root string) bool {
	_, err := run(ctx, root, "rev-parse", "--verify", "--quiet", "HEAD")
	return err == nil
}

// parseNameStatus parses `git diff --name-status` output. Renames and
// copies report their destination path.
func parseNameStatus(root, output string) []Change {
	changes := []Change{}
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		parts := strings.Split(line, "\t")
		if len(parts) < 2 {
			continue
		}

		status := strings.TrimSpace(parts[0])
		if status == "" || status[0] == 'D' {
			continue
		}

		path := parts[len(parts)-1]
		changes = append(changes, Change{
			Path:   filepath.Join(root, filepath.FromSlash(path)),
			Status: status[:1],
		})
	}
	return changes
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w (stderr: %s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(output), nil
}
