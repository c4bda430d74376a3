package matchspec

import (
	"path"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Matcher answers whether a candidate (version, build) pair satisfies a
// specification. The matrix engine treats this as an opaque predicate; the
// constraint grammar is entirely the matcher's business.
type Matcher interface {
	Match(spec Spec, version, build string) bool
}

// SemverMatcher evaluates version clauses with semantic-version comparisons
// and build constraints as globs. It understands the conda-style clause forms
// found in recipe requirements: operators (">=1.7", "<3", "==1.9", "!=2.0"),
// trailing-star prefixes ("1.8*"), and bare versions ("1.9", matching 1.9.x).
type SemverMatcher struct{}

// Match implements Matcher. Unparsable candidate versions never match a
// non-empty constraint.
func (SemverMatcher) Match(spec Spec, version, build string) bool {
	if spec.Constraint != "" {
		v, err := semver.NewVersion(version)
		if err != nil {
			return false
		}
		c, err := semver.NewConstraint(translateClauses(spec.Constraint))
		if err != nil {
			return false
		}
		if !c.Check(v) {
			return false
		}
	}
	if spec.Build != "" {
		ok, err := path.Match(spec.Build, build)
		if err != nil || !ok {
			return false
		}
	}
	return true
}

// translateClauses rewrites conda-style clauses into the constraint syntax
// understood by the semver library: "==" becomes "=", and a trailing star
// glued to a version component ("1.8*") becomes a wildcard ("1.8.*").
func translateClauses(constraint string) string {
	clauses := strings.Split(constraint, ",")
	for i, clause := range clauses {
		clause = strings.TrimSpace(clause)
		clause = strings.TrimPrefix(clause, "==")
		if clause != "*" && strings.HasSuffix(clause, "*") && !strings.HasSuffix(clause, ".*") {
			clause = strings.TrimSuffix(clause, "*") + ".*"
		}
		clauses[i] = clause
	}
	return strings.Join(clauses, ", ")
}
