package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/antopolskiy/skillz/internal/describe"
)

// Files looked up inside each skill directory.
const (
	SkillJSON     = "SKILL.json"
	SkillMarkdown = "SKILL.md"
)

const (
	maxDescription = 200
	scanLines      = 30
	minLineLength  = 20
)

// Build scans skillsDir and returns a catalog with one item per
// subdirectory, ordered by name.
//
// A description comes from SKILL.json ("description", then "overview"), then
// the SKILL.md frontmatter, then the first suitable line of SKILL.md. Skills
// without any get a placeholder that describe.IsGeneric recognizes.
func Build(skillsDir string) (*Catalog, error) {
	entries, err := os.ReadDir(skillsDir)
	if err != nil {
		return nil, fmt.Errorf("reading skills directory: %w", err)
	}

	c := &Catalog{Skills: []Item{}}
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name := e.Name()
		dir := filepath.Join(skillsDir, name)

		desc := descriptionFromJSON(filepath.Join(dir, SkillJSON))
		if desc == "" {
			desc = descriptionFromMarkdown(filepath.Join(dir, SkillMarkdown))
		}
		if desc == "" || desc == "|" || desc == ">" || desc == "---" {
			desc = Placeholder(name)
		}

		c.Skills = append(c.Skills, Item{
			Name:        name,
			Description: truncateRunes(desc, maxDescription),
			Category:    Categorize(name),
		})
	}
	return c, nil
}

// Placeholder returns the generic description for a skill without one,
// e.g. "Claude Code skill for Git Workflow" for "git-workflow".
func Placeholder(name string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return describe.GenericPrefix + " " + cases.Title(language.English).String(words)
}

func descriptionFromJSON(path string) string {
	data, err := os.ReadFile(path) //nolint:gosec // path inside the scanned skills directory
	if err != nil {
		return ""
	}
	var meta struct {
		Description string `json:"description"`
		Overview    string `json:"overview"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return ""
	}
	if d := strings.TrimSpace(meta.Description); d != "" {
		return d
	}
	return strings.TrimSpace(meta.Overview)
}

func descriptionFromMarkdown(path string) string {
	data, err := os.ReadFile(path) //nolint:gosec // path inside the scanned skills directory
	if err != nil {
		return ""
	}
	md := strings.ReplaceAll(string(data), "\r\n", "\n")

	if fm, ok := parseFrontmatter(md); ok && fm.Description != "" {
		return fm.Description
	}
	return firstDescriptiveLine(describe.StripFrontmatter(md))
}

type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// parseFrontmatter decodes a leading "---" delimited YAML block.
func parseFrontmatter(md string) (frontmatter, bool) {
	lines := strings.Split(md, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return frontmatter{}, false
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return frontmatter{}, false
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &fm); err != nil {
		return frontmatter{}, false
	}
	fm.Name = strings.TrimSpace(fm.Name)
	fm.Description = strings.TrimSpace(fm.Description)
	return fm, true
}

// firstDescriptiveLine returns the first line among the first few that reads
// like prose: a "use when"/"use this"/"this skill" line, or any line longer
// than 20 characters that does not start with list, table, or heading markup.
func firstDescriptiveLine(body string) string {
	lines := strings.Split(body, "\n")
	if len(lines) > scanLines {
		lines = lines[:scanLines]
	}
	for _, line := range lines {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "```") || strings.HasPrefix(line, "---") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)
		if strings.Contains(lower, "use when") || strings.Contains(lower, "use this") || strings.Contains(lower, "this skill") {
			return trimmed
		}
		if len(trimmed) > minLineLength && !strings.ContainsRune("|->#*", rune(trimmed[0])) {
			return trimmed
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// categoryRules maps name fragments to categories, checked in order.
var categoryRules = []struct {
	category string
	prefix   string
	contains []string
}{
	{category: "Scientific", prefix: "scientific-"},
	{category: "Cloudflare", prefix: "cloudflare-", contains: []string{"cloudflare"}},
	{category: "AI/ML", contains: []string{"ai-", "openai", "gemini", "ml-", "llm", "embeddings", "agents", "multimodal"}},
	{category: "DevOps", contains: []string{"devops", "docker", "terraform", "kubernetes", "infrastructure"}},
	{category: "Web Development", contains: []string{"react", "nextjs", "tailwind", "web", "frontend", "svelte", "vue"}},
	{category: "Development Tools", contains: []string{"git", "github", "testing", "code", "debug", "review"}},
	{category: "Automation", contains: []string{"bash", "script", "automation", "workflow", "playwright"}},
}

// Categorize assigns a category from keywords in a skill name.
func Categorize(name string) string {
	for _, r := range categoryRules {
		if r.prefix != "" && strings.HasPrefix(name, r.prefix) {
			return r.category
		}
		for _, frag := range r.contains {
			if strings.Contains(name, frag) {
				return r.category
			}
		}
	}
	return DefaultCategory
}
