// Package config handles skillz project configuration.
package config

import "github.com/antopolskiy/skillz/internal/installscript"

// Default values for a new configuration.
var (
	DefaultProduct   = installscript.DefaultProduct
	DefaultRepoURL   = installscript.DefaultRepoURL
	DefaultCatalog   = "docs/skills-catalog.json"
	DefaultSkillsDir = "skills"
)

const (
	// ConfigFileName is the config file looked up in the project directory.
	ConfigFileName = ".skillz.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)
