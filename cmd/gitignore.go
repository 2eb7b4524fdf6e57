package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	gitignoreFileMode       = 0o600
	gitignoreAffirmativeY   = "y"
	gitignoreAffirmativeYes = "yes"
)

// generatedScriptPatterns match the default names of written installer scripts.
var generatedScriptPatterns = []string{"install-*.sh", "install-*.ps1"}

// offerIgnoreGeneratedScripts asks on stderr whether to add the generated
// script patterns to dir/.gitignore.
func offerIgnoreGeneratedScripts(dir string, in io.Reader) error {
	fmt.Fprintf(os.Stderr, "Add %s to .gitignore? [Y/n] ", strings.Join(generatedScriptPatterns, ", "))
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading input: %w", err)
	}
	answer = strings.TrimSpace(strings.ToLower(answer))

	if answer != "" && answer != gitignoreAffirmativeY && answer != gitignoreAffirmativeYes {
		return nil
	}
	return ignoreGeneratedScripts(dir)
}

func ignoreGeneratedScripts(dir string) error {
	path := filepath.Join(dir, ".gitignore")
	for _, p := range generatedScriptPatterns {
		if err := ensureGitignoreEntry(path, p); err != nil {
			return err
		}
	}
	return nil
}

func ensureGitignoreEntry(gitignorePath, entry string) error {
	entry = strings.TrimSpace(filepath.ToSlash(entry))
	contents, err := os.ReadFile(gitignorePath) //nolint:gosec // path is the config directory's .gitignore
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading .gitignore: %w", err)
	}

	if err == nil && hasGitignoreEntry(contents, entry) {
		return nil
	}

	if os.IsNotExist(err) {
		return os.WriteFile(gitignorePath, []byte(entry+"\n"), gitignoreFileMode)
	}

	f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, gitignoreFileMode) //nolint:gosec // path is the config directory's .gitignore
	if err != nil {
		return fmt.Errorf("opening .gitignore: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	if len(contents) > 0 && contents[len(contents)-1] != '\n' {
		if _, err := f.WriteString("\n"); err != nil {
			return fmt.Errorf("updating .gitignore: %w", err)
		}
	}

	if _, err := f.WriteString(entry + "\n"); err != nil {
		return fmt.Errorf("updating .gitignore: %w", err)
	}
	return nil
}

func hasGitignoreEntry(contents []byte, entry string) bool {
	for _, line := range strings.Split(string(contents), "\n") {
		if strings.TrimSpace(line) == entry {
			return true
		}
	}
	return false
}
