// Package paths resolves where codexmgr keeps its own data and where the
// Codex CLI keeps its live configuration.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	appDirName        = "codexmgr"
	profilesDirName   = "profiles"
	backupsDirName    = "backups"
	activeProfileFile = "active-profile.txt"
	envFileName       = ".env"
	lastApplyFile     = "last-apply.json"

	codexDirName    = ".codex"
	codexConfigFile = "config.toml"
	codexAuthFile   = "auth.json"
)

// Environment variables consulted by Resolve.
const (
	EnvStoreHome = "CODEXMGR_HOME"
	EnvCodexHome = "CODEX_HOME"
	EnvXDGConfig = "XDG_CONFIG_HOME"
)

// Paths holds the two roots everything else is derived from.
type Paths struct {
	// Root is codexmgr's own directory (profiles, active marker, backups).
	Root string
	// CodexHome is the Codex CLI's config directory.
	CodexHome string
}

// New returns Paths for explicit roots.
func New(root, codexHome string) Paths {
	return Paths{Root: root, CodexHome: codexHome}
}

// Resolve computes the roots from the environment.
//
// Root: $CODEXMGR_HOME, else $XDG_CONFIG_HOME/codexmgr, else ~/.config/codexmgr.
// CodexHome: $CODEX_HOME, else CODEX_HOME from <Root>/.env, else ~/.codex.
func Resolve() (Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return resolve(homeDir, os.Getenv)
}

func resolve(homeDir string, getenv func(string) string) (Paths, error) {
	root := getenv(EnvStoreHome)
	if root == "" {
		xdgConfigHome := getenv(EnvXDGConfig)
		if xdgConfigHome == "" {
			xdgConfigHome = filepath.Join(homeDir, ".config")
		}
		root = filepath.Join(xdgConfigHome, appDirName)
	}

	codexHome := getenv(EnvCodexHome)
	if codexHome == "" {
		fromFile, err := readEnvFile(Paths{Root: root}.EnvFile())
		if err != nil {
			return Paths{}, err
		}
		codexHome = fromFile[EnvCodexHome]
	}
	if codexHome == "" {
		codexHome = filepath.Join(homeDir, codexDirName)
	}

	return Paths{Root: root, CodexHome: expandHome(codexHome, homeDir)}, nil
}

// readEnvFile returns the variables in a dotenv file; a missing file is empty.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return vars, nil
}

func expandHome(path, homeDir string) string {
	if path == "~" {
		return homeDir
	}
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// ProfilesDir returns <Root>/profiles.
func (p Paths) ProfilesDir() string {
	return filepath.Join(p.Root, profilesDirName)
}

// ProfilePath returns <Root>/profiles/<id>.json. The id must already be validated.
func (p Paths) ProfilePath(id string) string {
	return filepath.Join(p.ProfilesDir(), id+".json")
}

// ActiveProfilePath returns <Root>/active-profile.txt.
func (p Paths) ActiveProfilePath() string {
	return filepath.Join(p.Root, activeProfileFile)
}

// BackupDir returns <Root>/backups.
func (p Paths) BackupDir() string {
	return filepath.Join(p.Root, backupsDirName)
}

// LastApplyPath returns <Root>/backups/last-apply.json.
func (p Paths) LastApplyPath() string {
	return filepath.Join(p.BackupDir(), lastApplyFile)
}

// EnvFile returns <Root>/.env.
func (p Paths) EnvFile() string {
	return filepath.Join(p.Root, envFileName)
}

// CodexConfigPath returns <CodexHome>/config.toml.
func (p Paths) CodexConfigPath() string {
	return filepath.Join(p.CodexHome, codexConfigFile)
}

// CodexAuthPath returns <CodexHome>/auth.json.
func (p Paths) CodexAuthPath() string {
	return filepath.Join(p.CodexHome, codexAuthFile)
}
