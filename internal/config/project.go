package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Project describes one watched project, loaded from a clockhand.json file
// placed in (or near) the project's directory tree.
type Project struct {
	// ProjectID is the Harvest project the directory maps to.
	ProjectID int64 `json:"project_id"`
	// Name is the human-readable project name used in notifications.
	// Defaults to the root directory's name.
	Name string `json:"name"`
	// Root is the resolved directory tree to watch. Derived from the
	// config file's location, not part of the file itself.
	Root string `json:"-"`
}

// LoadProject reads one clockhand.json file and resolves the project root.
// The root is the directory containing the file, or that directory's
// parent when the file lives in a directory named .config.
func LoadProject(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("reading project config %s: %w", path, err)
	}

	var p Project
	if err := json.Unmarshal(stripLineComments(data), &p); err != nil {
		return Project{}, fmt.Errorf("parsing project config %s: %w", path, err)
	}
	if p.ProjectID == 0 {
		return Project{}, fmt.Errorf("project config %s: missing project_id", path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Project{}, fmt.Errorf("resolving project config path %s: %w", path, err)
	}
	root := filepath.Dir(abs)
	if filepath.Base(root) == ".config" {
		root = filepath.Dir(root)
	}
	p.Root = root
	if p.Name == "" {
		p.Name = filepath.Base(root)
	}
	return p, nil
}

// LoadProjects expands each pattern with filepath.Glob and loads every
// match; a pattern with no matches is treated as a literal path. Matches
// are honored in order and not deduplicated. Invalid entries are returned
// as warnings and do not prevent the remaining projects from loading.
func LoadProjects(patterns []string) ([]Project, []error) {
	var projects []Project
	var warnings []error
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("bad pattern %q: %w", pattern, err))
			continue
		}
		if len(matches) == 0 {
			matches = []string{pattern}
		}
		for _, m := range matches {
			p, err := LoadProject(m)
			if err != nil {
				warnings = append(warnings, err)
				continue
			}
			projects = append(projects, p)
		}
	}
	return projects, warnings
}
