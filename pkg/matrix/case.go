// Package matrix computes the build-variant matrix for a package: the set of
// dependency-version combinations ("cases") it must be built against, plus
// the filtering and reduction passes applied to that set before building.
package matrix

import "strings"

// Pin fixes one dependency to one version within a build case.
type Pin struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Case is one fully pinned combination of dependency versions, constituting
// a single build variant. Cases are immutable once produced; downstream
// stages only ever discard them.
type Case []Pin

// Get returns the pinned version for a dependency name, if present.
func (c Case) Get(name string) (string, bool) {
	for _, p := range c {
		if p.Name == name {
			return p.Version, true
		}
	}
	return "", false
}

// String renders the case as space-separated name=version pairs. The empty
// case renders as "-".
func (c Case) String() string {
	if len(c) == 0 {
		return "-"
	}
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.Name + "=" + p.Version
	}
	return strings.Join(parts, " ")
}
