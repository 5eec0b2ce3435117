package app

import (
	"os"
	"path/filepath"
)

// Paths holds all resolved filesystem paths for the .fuzzy/ project directory.
type Paths struct {
	Root   string // .fuzzy/
	DB     string // .fuzzy/fuzzy.db
	Config string // .fuzzy/config.yaml

	LogDir  string // .fuzzy/log/
	LogFile string // .fuzzy/log/fuzzy.log
}

// NewPaths constructs all resolved paths from a project root directory.
func NewPaths(projectRoot string) *Paths {
	root := filepath.Join(projectRoot, ".fuzzy")
	return &Paths{
		Root:   root,
		DB:     filepath.Join(root, "fuzzy.db"),
		Config: filepath.Join(root, "config.yaml"),

		LogDir:  filepath.Join(root, "log"),
		LogFile: filepath.Join(root, "log", "fuzzy.log"),
	}
}

// EnsureDirs creates all subdirectories under .fuzzy/. Idempotent.
func (p *Paths) EnsureDirs() error {
	for _, d := range []string{p.Root, p.LogDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			return err
		}
	}
	return nil
}
