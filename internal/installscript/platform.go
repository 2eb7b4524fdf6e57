// Package installscript renders installer scripts that fetch a set of skills
// from a git repository and copy them into an agent's skill directory.
//
// Rendering is pure: the package never touches the filesystem, the network,
// or the clock. Everything an installer does happens later, when the user
// runs the generated text in their own shell.
package installscript

import (
	"errors"
	"fmt"
	"strings"
)

// Platform selects the script dialect.
type Platform string

// Supported platforms.
const (
	Windows Platform = "windows"
	Unix    Platform = "unix"
)

// ErrUnknownPlatform is returned for platform values outside Windows and Unix.
var ErrUnknownPlatform = errors.New("unknown platform")

var platformAliases = map[string]Platform{
	"windows":    Windows,
	"win":        Windows,
	"powershell": Windows,
	"pwsh":       Windows,
	"ps1":        Windows,
	"unix":       Unix,
	"linux":      Unix,
	"macos":      Unix,
	"darwin":     Unix,
	"mac":        Unix,
	"sh":         Unix,
	"bash":       Unix,
}

// Platforms returns the supported platforms in display order.
func Platforms() []Platform {
	return []Platform{Windows, Unix}
}

// ParsePlatform maps user input (case-insensitive, with aliases such as
// "linux" or "powershell") to a Platform.
func ParsePlatform(s string) (Platform, error) {
	if p, ok := platformAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

// DetectPlatform returns the platform matching a runtime.GOOS value.
// macOS and Linux share the Unix script.
func DetectPlatform(goos string) Platform {
	if goos == "windows" {
		return Windows
	}
	return Unix
}

// Valid reports whether p is a supported platform.
func (p Platform) Valid() bool {
	return p == Windows || p == Unix
}

// Label is the human-readable platform name used in script headers.
func (p Platform) Label() string {
	switch p {
	case Windows:
		return "Windows"
	case Unix:
		return "Linux/macOS"
	default:
		return string(p)
	}
}

// Extension returns the script file extension without the dot.
func (p Platform) Extension() string {
	if p == Windows {
		return "ps1"
	}
	return "sh"
}

// MIMEType returns the content type used when offering the script for download.
func (p Platform) MIMEType() string {
	if p == Windows {
		return "text/plain"
	}
	return "text/x-shellscript"
}
