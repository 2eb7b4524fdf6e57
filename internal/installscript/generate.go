package installscript

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoSkills is returned when Generate is called with an empty selection.
var ErrNoSkills = errors.New("no skills selected")

// Default script options.
const (
	DefaultProduct     = "ClaudeSkillz"
	DefaultRepoURL     = "https://github.com/jackspace/ClaudeSkillz.git"
	DefaultInstallDir  = ".claude/skills"
	DefaultTempDirName = "claudeskillz-temp"
	DefaultSkillsPath  = "skills"
)

// Options controls the repository and directories referenced by a script.
type Options struct {
	// Product names the skill collection in banners and the file name.
	Product string
	// RepoURL is the git repository cloned by the script.
	RepoURL string
	// InstallDir is the skill directory relative to the user's home
	// ($HOME or $env:USERPROFILE), using forward slashes.
	InstallDir string
	// TempDirName is the clone directory created under the system temp dir.
	TempDirName string
	// SkillsPath is the directory inside the repository holding one
	// subdirectory per skill.
	SkillsPath string
}

// DefaultOptions returns the options for the ClaudeSkillz repository.
func DefaultOptions() Options {
	return Options{
		Product:     DefaultProduct,
		RepoURL:     DefaultRepoURL,
		InstallDir:  DefaultInstallDir,
		TempDirName: DefaultTempDirName,
		SkillsPath:  DefaultSkillsPath,
	}
}

// withDefaults fills empty fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Product == "" {
		o.Product = d.Product
	}
	if o.RepoURL == "" {
		o.RepoURL = d.RepoURL
	}
	if o.InstallDir == "" {
		o.InstallDir = d.InstallDir
	}
	if o.TempDirName == "" {
		o.TempDirName = d.TempDirName
	}
	if o.SkillsPath == "" {
		o.SkillsPath = d.SkillsPath
	}
	return o
}

// Script is a rendered installer.
type Script struct {
	Platform      Platform `json:"platform"`
	PlatformLabel string   `json:"platform_label"`
	Product       string   `json:"product"`
	Skills        int      `json:"skills"`
	Text          string   `json:"text"`
}

// Filename returns the conventional download name, e.g. install-claudeskillz.sh.
func (s Script) Filename() string {
	return Filename(s.Product, s.Platform)
}

// MIMEType returns the script's content type.
func (s Script) MIMEType() string {
	return s.Platform.MIMEType()
}

// Filename returns install-<product>.<ext> with the product lowercased and
// anything outside [a-z0-9-] replaced by a dash.
func Filename(product string, p Platform) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, strings.ToLower(product))
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "skills"
	}
	return "install-" + slug + "." + p.Extension()
}

// Generate renders an installer for names, in the given order, on platform p.
// The output depends only on its arguments; generatedAt is embedded in the
// header and is the only part that varies between otherwise equal calls.
func Generate(names []string, p Platform, generatedAt time.Time, opts Options) (Script, error) {
	if len(names) == 0 {
		return Script{}, ErrNoSkills
	}
	esc, err := EscaperFor(p)
	if err != nil {
		return Script{}, fmt.Errorf("%w: %q", err, string(p))
	}
	opts = opts.withDefaults()

	r := renderer{esc: esc, opts: opts, names: names, at: generatedAt.UTC()}
	var text string
	if p == Windows {
		text = r.powershell()
	} else {
		text = r.shell()
	}

	return Script{
		Platform:      p,
		PlatformLabel: p.Label(),
		Product:       opts.Product,
		Skills:        len(names),
		Text:          text,
	}, nil
}

type renderer struct {
	esc   Escaper
	opts  Options
	names []string
	at    time.Time
	b     strings.Builder
}

func (r *renderer) line(format string, args ...any) {
	fmt.Fprintf(&r.b, format, args...)
	r.b.WriteByte('\n')
}

func (r *renderer) blank() {
	r.b.WriteByte('\n')
}

// header writes the comment block shared by both dialects.
func (r *renderer) header(platform Platform) {
	r.line("# %s Installation Script for %s", comment(r.opts.Product), platform.Label())
	r.line("# Generated: %s", r.at.Format(time.RFC3339))
	r.line("# Selected Skills: %d", len(r.names))
	r.blank()
}

func (r *renderer) q(s string) string {
	return r.esc.Quote(s)
}

func (r *renderer) shell() string {
	n := len(r.names)
	product := comment(r.opts.Product)

	r.line("#!/usr/bin/env bash")
	r.header(Unix)

	// Fail fast until the repository is cloned; the install loop below
	// runs with errexit off so one bad skill cannot stop the rest.
	r.line("set -e")
	r.blank()
	r.line(`SKILLS_DIR="$HOME/%s"`, r.esc.Escape(strings.Trim(r.opts.InstallDir, "/")))
	r.line("REPO_URL=%s", r.q(r.opts.RepoURL))
	r.line(`TEMP_DIR="${TMPDIR:-/tmp}/%s"`, r.esc.Escape(r.opts.TempDirName))
	r.blank()
	r.line("echo %s", r.q(product+" Installer"))
	r.line("echo %s", r.q(fmt.Sprintf("Installing %d selected skills...", n)))
	r.line(`echo ""`)
	r.blank()
	r.line("# Create skills directory")
	r.line(`mkdir -p "$SKILLS_DIR"`)
	r.line(`echo "[OK] Skills directory ready"`)
	r.blank()
	r.line("# Clone repository")
	r.line("echo %s", r.q("Cloning "+product+" repository..."))
	r.line(`rm -rf "$TEMP_DIR"`)
	r.line(`if ! git clone --depth 1 "$REPO_URL" "$TEMP_DIR"; then`)
	r.line(`    echo "[ERROR] Failed to clone repository" >&2`)
	r.line("    exit 1")
	r.line("fi")
	r.line("set +e")
	r.blank()
	r.line("# Install selected skills")
	r.line("SKILLS=(")
	for _, name := range r.names {
		r.line("    %s", r.q(name))
	}
	r.line(")")
	r.blank()
	r.line("INSTALLED=0")
	r.line(`for skill in "${SKILLS[@]}"; do`)
	r.line(`    SOURCE_PATH="$TEMP_DIR/%s/$skill"`, r.esc.Escape(strings.Trim(r.opts.SkillsPath, "/")))
	r.line(`    DEST_PATH="$SKILLS_DIR/$skill"`)
	r.blank()
	r.line(`    if [ -d "$SOURCE_PATH" ]; then`)
	r.line(`        rm -rf "$DEST_PATH"`)
	r.line(`        if cp -R "$SOURCE_PATH" "$DEST_PATH"; then`)
	r.line(`            echo "[OK] Installed: $skill"`)
	r.line("            INSTALLED=$((INSTALLED + 1))")
	r.line("        else")
	r.line(`            echo "[FAIL] Could not copy: $skill" >&2`)
	r.line("        fi")
	r.line("    else")
	r.line(`        echo "[SKIP] Not found: $skill"`)
	r.line("    fi")
	r.line("done")
	r.blank()
	r.line("# Cleanup")
	r.line(`rm -rf "$TEMP_DIR"`)
	r.line(`echo ""`)
	r.line(`echo "Installation complete! $INSTALLED of %d skills installed."`, n)
	return r.b.String()
}

func (r *renderer) powershell() string {
	n := len(r.names)
	product := comment(r.opts.Product)
	installDir := strings.ReplaceAll(strings.Trim(r.opts.InstallDir, "/"), "/", `\`)
	skillsPath := strings.ReplaceAll(strings.Trim(r.opts.SkillsPath, "/"), "/", `\`)

	r.header(Windows)
	r.line("$skillsDir = Join-Path $env:USERPROFILE %s", r.q(installDir))
	r.line("$repoUrl = %s", r.q(r.opts.RepoURL))
	r.line("$tempDir = Join-Path $env:TEMP %s", r.q(r.opts.TempDirName))
	r.blank()
	r.line("Write-Host %s -ForegroundColor Cyan", r.q(product+" Installer"))
	r.line("Write-Host %s -ForegroundColor Cyan", r.q(fmt.Sprintf("Installing %d selected skills...", n)))
	r.line("Write-Host ''")
	r.blank()
	r.line("# Create skills directory if it doesn't exist")
	r.line("if (-not (Test-Path $skillsDir)) {")
	r.line("    New-Item -ItemType Directory -Path $skillsDir -Force | Out-Null")
	r.line("    Write-Host '[OK] Created skills directory' -ForegroundColor Green")
	r.line("}")
	r.blank()
	r.line("# Clone repository to temp")
	r.line("Write-Host %s -ForegroundColor Yellow", r.q("Cloning "+product+" repository..."))
	r.line("if (Test-Path $tempDir) {")
	r.line("    Remove-Item -Recurse -Force $tempDir")
	r.line("}")
	r.line("git clone --depth 1 $repoUrl $tempDir")
	r.blank()
	r.line("if ($LASTEXITCODE -ne 0) {")
	r.line("    Write-Host '[ERROR] Failed to clone repository' -ForegroundColor Red")
	r.line("    exit 1")
	r.line("}")
	r.blank()
	r.line("# Install selected skills")
	r.line("$selectedSkills = @(")
	for i, name := range r.names {
		sep := ","
		if i == n-1 {
			sep = ""
		}
		r.line("    %s%s", r.q(name), sep)
	}
	r.line(")")
	r.blank()
	r.line("$installed = 0")
	r.line("foreach ($skill in $selectedSkills) {")
	r.line("    $sourcePath = Join-Path (Join-Path $tempDir %s) $skill", r.q(skillsPath))
	r.line("    $destPath = Join-Path $skillsDir $skill")
	r.blank()
	r.line("    if (Test-Path $sourcePath) {")
	r.line("        if (Test-Path $destPath) {")
	r.line("            Remove-Item -Recurse -Force $destPath")
	r.line("        }")
	r.line("        Copy-Item -Recurse -Force $sourcePath $destPath")
	r.line(`        Write-Host "[OK] Installed: $skill" -ForegroundColor Green`)
	r.line("        $installed++")
	r.line("    } else {")
	r.line(`        Write-Host "[SKIP] Not found: $skill" -ForegroundColor Yellow`)
	r.line("    }")
	r.line("}")
	r.blank()
	r.line("# Cleanup")
	r.line("Remove-Item -Recurse -Force $tempDir")
	r.line("Write-Host ''")
	r.line(`Write-Host "Installation complete! $installed of %d skills installed." -ForegroundColor Cyan`, n)
	return r.b.String()
}

// comment flattens s onto one line so it cannot escape a # comment or
// spill a banner across lines.
func comment(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
