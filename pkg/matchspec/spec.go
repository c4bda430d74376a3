// Package matchspec parses dependency specification lines, normalizes
// repeated lines into one canonical specification per package name, and
// defines the constraint-matching surface consumed by the matrix engine.
package matchspec

import (
	"fmt"
	"strings"
)

// Spec is a single dependency specification: a package name plus optional
// version and build constraints. The zero constraint matches any candidate.
type Spec struct {
	// Name is the package name the specification applies to.
	Name string
	// Constraint holds the version clauses, comma-joined (and-ed together).
	// Empty means any version.
	Constraint string
	// Build restricts the build identifier (exact string or glob).
	// Empty means any build.
	Build string
}

// Unconstrained reports whether the spec matches every candidate.
func (s Spec) Unconstrained() bool {
	return s.Constraint == "" && s.Build == ""
}

// String renders the spec back to its line form ("name constraint build").
// A build constraint without version clauses renders with a "*" version
// placeholder so the result stays parseable.
func (s Spec) String() string {
	switch {
	case s.Build != "":
		constraint := s.Constraint
		if constraint == "" {
			constraint = "*"
		}
		return s.Name + " " + constraint + " " + s.Build
	case s.Constraint != "":
		return s.Name + " " + s.Constraint
	default:
		return s.Name
	}
}

// Parse parses one raw specification line into a Spec. A line carries a
// package name, optionally followed by a version constraint and a build
// constraint, separated by whitespace.
func Parse(line string) (Spec, error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 0:
		return Spec{}, fmt.Errorf("empty specification line")
	case 1:
		return Spec{Name: fields[0]}, nil
	case 2:
		return Spec{Name: fields[0], Constraint: fields[1]}, nil
	case 3:
		return Spec{Name: fields[0], Constraint: fields[1], Build: fields[2]}, nil
	default:
		return Spec{}, fmt.Errorf("malformed specification %q: expected at most name, version and build", line)
	}
}

// Normalize collapses raw requirement lines into exactly one Spec per
// distinct package name. Version clauses from repeated lines are comma-joined
// in encounter order; a bare name contributes no clause but still establishes
// the name's presence. The first non-empty build constraint for a name wins.
func Normalize(lines []string) (map[string]Spec, error) {
	specs := make(map[string]Spec, len(lines))
	for _, line := range lines {
		s, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("parsing specification %q: %w", line, err)
		}
		cur, ok := specs[s.Name]
		if !ok {
			specs[s.Name] = s
			continue
		}
		if s.Constraint != "" {
			if cur.Constraint == "" {
				cur.Constraint = s.Constraint
			} else {
				cur.Constraint += "," + s.Constraint
			}
		}
		if cur.Build == "" {
			cur.Build = s.Build
		}
		specs[s.Name] = cur
	}
	return specs, nil
}
