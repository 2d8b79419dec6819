// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// manifestFile is the export manifest filename inside the output directory.
const manifestFile = ".export_manifest.yaml"

// nowUTC is a hook for tests that assert on manifest timestamps.
var nowUTC = func() time.Time { return time.Now().UTC() }

// Manifest summarizes a completed export run. It is informational only;
// the driver never reads it back for skip decisions.
type Manifest struct {
	NotebookID   string            `yaml:"notebook_id"`
	NotebookName string            `yaml:"notebook_name,omitempty"`
	ExportedAt   time.Time         `yaml:"exported_at"`
	Sections     []SectionManifest `yaml:"sections"`
}

// SectionManifest records one section's page count.
type SectionManifest struct {
	Name  string `yaml:"name"`
	Pages int    `yaml:"pages"`
}

// WriteManifest writes the manifest into dir.
func WriteManifest(dir string, m Manifest) error {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshaling export manifest: %w", err)
	}
	path := filepath.Join(dir, manifestFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export manifest: %w", err)
	}
	return nil
}

// ReadManifest loads the manifest from dir, if one exists.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing export manifest: %w", err)
	}
	return &m, nil
}
