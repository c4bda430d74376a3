package matrix

import (
	"fmt"

	"github.com/condatools/buildmatrix/pkg/matchspec"
)

// MissingPolicy controls what Filter does with a case that has no pinned
// value for a condition's package name.
type MissingPolicy int

const (
	// RetainMissing keeps such cases: a condition on an absent column is
	// vacuously satisfied.
	RetainMissing MissingPolicy = iota
	// DropMissing discards such cases.
	DropMissing
)

// Filter returns the cases whose pins satisfy every applicable condition.
// Conditions use the same textual grammar as dependency specifications and
// are evaluated by the matcher against the pinned version. Cases pin versions
// only, so a condition carrying a build clause is an error. An empty condition
// list returns the input unchanged; surviving cases keep their original
// relative order.
func Filter(cases []Case, conditions []string, m matchspec.Matcher, policy MissingPolicy) ([]Case, error) {
	if len(conditions) == 0 {
		return cases, nil
	}
	specs := make([]matchspec.Spec, 0, len(conditions))
	for _, cond := range conditions {
		s, err := matchspec.Parse(cond)
		if err != nil {
			return nil, fmt.Errorf("parsing condition %q: %w", cond, err)
		}
		if s.Build != "" {
			return nil, fmt.Errorf("condition %q: build clauses cannot be matched against pinned versions", cond)
		}
		specs = append(specs, s)
	}

	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		keep := true
		for _, s := range specs {
			version, ok := c.Get(s.Name)
			if !ok {
				if policy == DropMissing {
					keep = false
					break
				}
				continue
			}
			if !m.Match(s, version, "") {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out, nil
}
