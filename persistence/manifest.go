package persistence

import (
	"encoding/json"
	"fmt"
)

const (
	// ManifestName is the default manifest blob name.
	ManifestName = "manifest.json"
	// CurrentName is the pointer blob holding the active manifest name.
	CurrentName = "CURRENT"

	// SchemaVersion is the current manifest schema version.
	SchemaVersion = 1

	// SourcePath and DestinationPath are the per-side feature file names.
	SourcePath      = "source/features.col"
	DestinationPath = "destination/features.col"
)

// Manifest describes a saved model.
type Manifest struct {
	SchemaVersion int      `json:"schema_version"`
	Rank          int      `json:"rank"`
	Compression   string   `json:"compression"`
	Source        SideInfo `json:"source"`
	Destination   SideInfo `json:"destination"`
}

// SideInfo describes one side's feature file.
type SideInfo struct {
	Count int    `json:"count"`
	Path  string `json:"path"` // Relative to the store root
}

func (m *Manifest) validate() error {
	if m.SchemaVersion != SchemaVersion {
		return fmt.Errorf("persistence: unsupported schema version: %d (expected %d)", m.SchemaVersion, SchemaVersion)
	}
	if m.Rank <= 0 {
		return fmt.Errorf("persistence: invalid rank in manifest: %d", m.Rank)
	}
	return nil
}

func (m *Manifest) marshal() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func unmarshalManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("persistence: decode manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
