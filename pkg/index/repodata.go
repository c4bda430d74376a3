package index

import (
	"encoding/json"
	"fmt"
	"os"
)

// repodataFile mirrors the repodata.json channel snapshot format: a mapping
// from distribution filename to package info.
type repodataFile struct {
	Packages map[string]repodataRecord `json:"packages"`
}

type repodataRecord struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	Build   string   `json:"build"`
	Depends []string `json:"depends"`
}

// LoadRepodata reads a repodata.json-shaped channel snapshot into a
// MemoryIndex.
func LoadRepodata(path string) (*MemoryIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading repodata: %w", err)
	}
	var repo repodataFile
	if err := json.Unmarshal(data, &repo); err != nil {
		return nil, fmt.Errorf("parsing repodata %s: %w", path, err)
	}
	idx := NewMemoryIndex()
	for _, rec := range repo.Packages {
		idx.AddRecord(Record{
			Name:    rec.Name,
			Version: rec.Version,
			Build:   rec.Build,
			Depends: rec.Depends,
		})
	}
	return idx, nil
}
