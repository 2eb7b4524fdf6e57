// Package agent lists the AI coding agents whose skill directories an
// installer script can target.
package agent

import (
	"os"
	"path/filepath"
	"strings"
)

// Agent describes an AI coding agent and where it loads skills from.
type Agent struct {
	// Name is the identifier used in --agent flags and config.
	Name string `json:"name"`
	// DisplayName is the human-readable name shown in menus.
	DisplayName string `json:"display_name"`
	// SkillsDir is the skill directory relative to the user's home directory.
	SkillsDir string `json:"skills_dir"`
}

// Default is the agent used when none is configured.
const Default = "claude"

var agents = []Agent{
	{Name: "claude", DisplayName: "Claude Code", SkillsDir: ".claude/skills"},
	{Name: "codex", DisplayName: "Codex", SkillsDir: ".codex/skills"},
	{Name: "cursor", DisplayName: "Cursor", SkillsDir: ".cursor/skills"},
	{Name: "openclaw", DisplayName: "OpenClaw", SkillsDir: ".openclaw/skills"},
}

// Agents returns all supported agents.
func Agents() []Agent {
	out := make([]Agent, len(agents))
	copy(out, agents)
	return out
}

// ByName returns the agent with the given name, ignoring case.
func ByName(name string) (Agent, bool) {
	for _, a := range agents {
		if strings.EqualFold(a.Name, name) {
			return a, true
		}
	}
	return Agent{}, false
}

// Names returns the names of all supported agents.
func Names() []string {
	names := make([]string, len(agents))
	for i, a := range agents {
		names[i] = a.Name
	}
	return names
}

// InstallDir returns the home-relative directory in the slash form that
// installer scripts expect.
func (a Agent) InstallDir() string {
	return filepath.ToSlash(a.SkillsDir)
}

// Path returns the absolute skill directory under home.
func (a Agent) Path(home string) string {
	return filepath.Join(home, filepath.FromSlash(a.SkillsDir))
}

// Installed returns the names that already have a SKILL.md under the agent's
// skill directory in home, preserving the order of names.
func (a Agent) Installed(home string, names []string) []string {
	base := a.Path(home)
	var found []string
	for _, n := range names {
		info, err := os.Stat(filepath.Join(base, n, "SKILL.md"))
		if err == nil && !info.IsDir() {
			found = append(found, n)
		}
	}
	return found
}

// Detect returns the agents whose configuration directory exists in home.
// For example, ~/.claude marks Claude Code as present.
func Detect(home string) []Agent {
	var detected []Agent
	for _, a := range agents {
		parent := filepath.Join(home, filepath.Dir(filepath.FromSlash(a.SkillsDir)))
		if info, err := os.Stat(parent); err == nil && info.IsDir() {
			detected = append(detected, a)
		}
	}
	return detected
}
