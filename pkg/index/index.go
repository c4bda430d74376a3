// Package index provides the dependency catalog consulted by the matrix
// builder: every known build of every package, together with the dependency
// specifications that build declares.
package index

// Record describes one available build of a package.
type Record struct {
	// Name is the package name.
	Name string
	// Version is the full version string of this build.
	Version string
	// Build is the build identifier (e.g. "py27_0"), possibly empty.
	Build string
	// Depends lists the dependency specification lines this build declares.
	Depends []string
}

// Index is a read-only catalog of available package builds.
type Index interface {
	// Records returns every known record for the given package name.
	// An unknown name yields an empty slice, not an error.
	Records(name string) []Record
}

// MemoryIndex is an in-memory Index keyed by package name. Records are
// returned in insertion order.
type MemoryIndex struct {
	records map[string][]Record
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{records: make(map[string][]Record)}
}

// Add registers a build of a package in the index.
func (m *MemoryIndex) Add(name, version, build string, depends ...string) {
	m.AddRecord(Record{Name: name, Version: version, Build: build, Depends: depends})
}

// AddRecord registers a record in the index.
func (m *MemoryIndex) AddRecord(r Record) {
	m.records[r.Name] = append(m.records[r.Name], r)
}

// Records implements Index.
func (m *MemoryIndex) Records(name string) []Record {
	return m.records[name]
}

// Len returns the total number of records in the index.
func (m *MemoryIndex) Len() int {
	n := 0
	for _, recs := range m.records {
		n += len(recs)
	}
	return n
}
