package matrix

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/condatools/buildmatrix/pkg/index"
	"github.com/condatools/buildmatrix/pkg/matchspec"
)

// Metadata is the slice of package metadata the builder consumes.
type Metadata struct {
	// Name is the package name.
	Name string
	// Version is the package's own version.
	Version string
	// Noarch marks the package as interpreter-version-independent.
	Noarch bool
	// BuildRequirements are the raw build dependency specification lines.
	BuildRequirements []string
	// RunRequirements are the raw run dependency specification lines.
	RunRequirements []string
}

// Builder enumerates the valid build cases for one package against an index.
type Builder struct {
	table   Table
	matcher matchspec.Matcher
	logger  *slog.Logger
}

// BuilderConfig holds builder configuration. Zero values select the default
// dimension table, the semver matcher and a discarded logger.
type BuilderConfig struct {
	Table   Table
	Matcher matchspec.Matcher
	Logger  *slog.Logger
}

// NewBuilder creates a builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	table := cfg.Table
	if table == (Table{}) {
		table = DefaultTable()
	}
	matcher := cfg.Matcher
	if matcher == nil {
		matcher = matchspec.SemverMatcher{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{table: table, matcher: matcher, logger: logger}
}

// Build returns the set of build cases for the package. An unsatisfiable
// matrix is an empty (non-nil) result, not an error; a package with no
// varying dimension yields the singleton empty case. Cases are returned in a
// deterministic order.
func (b *Builder) Build(meta Metadata, idx index.Index) ([]Case, error) {
	specs, err := matchspec.Normalize(meta.BuildRequirements)
	if err != nil {
		return nil, err
	}
	runSpecs, err := matchspec.Normalize(meta.RunRequirements)
	if err != nil {
		return nil, err
	}

	// Building the interpreter itself pins its own major.minor; the index
	// holds no say in the matter.
	if meta.Name == b.table.Interpreter {
		return []Case{{Pin{b.table.Interpreter, MajorMinor(meta.Version)}}}, nil
	}

	// A plain numerics pin (run requirement present without the wildcard
	// marker) is baked in at build time and contributes no dimension.
	npSpec, hasNp := specs[b.table.Numerics]
	if npRun, ok := runSpecs[b.table.Numerics]; hasNp && ok &&
		!strings.Contains(npRun.Constraint, b.table.WildcardMarker) {
		delete(specs, b.table.Numerics)
		hasNp = false
	}
	for name, s := range specs {
		specs[name] = b.stripWildcardMarker(s)
	}
	npSpec = specs[b.table.Numerics]

	interpSpec, hasInterp := specs[b.table.Interpreter]

	// One pass over every consulted simple-dependency record: collect the
	// dimension's candidate values and accumulate the constraints those
	// records impose on the interpreter and numerics dimensions. An omitted
	// dimension still narrows the special dimensions through this
	// accumulator.
	var interpConstraints, numericsConstraints []matchspec.Spec
	simpleOrder := firstSeenOrder(meta.BuildRequirements)
	simpleValues := make(map[string][]string)
	for _, name := range simpleOrder {
		if b.table.KindOf(name) != KindSimple {
			continue
		}
		spec := specs[name]
		for _, rec := range idx.Records(name) {
			if !b.matcher.Match(spec, rec.Version, rec.Build) {
				continue
			}
			simpleValues[name] = appendDistinct(simpleValues[name], rec.Version)
			for _, depLine := range rec.Depends {
				dep, err := matchspec.Parse(depLine)
				if err != nil {
					return nil, fmt.Errorf("record %s-%s: %w", rec.Name, rec.Version, err)
				}
				switch b.table.KindOf(dep.Name) {
				case KindInterpreter:
					interpConstraints = append(interpConstraints, dep)
				case KindNumerics:
					numericsConstraints = append(numericsConstraints, dep)
				}
			}
		}
	}

	// A consulted record requiring the numerics dependency activates its
	// dimension transitively.
	numericsActive := hasNp || len(numericsConstraints) > 0

	// Admitted interpreter values: distinct major.minor of index versions
	// satisfying the package's own constraint and every accumulated one.
	var interpValues []string
	if !meta.Noarch && (hasInterp || numericsActive) {
		for _, rec := range idx.Records(b.table.Interpreter) {
			if !b.matcher.Match(interpSpec, rec.Version, rec.Build) {
				continue
			}
			if !b.matchAll(interpConstraints, rec.Version, rec.Build) {
				continue
			}
			interpValues = appendDistinct(interpValues, MajorMinor(rec.Version))
		}
	}

	joint, err := b.jointDimension(meta, idx, npSpec, numericsActive, numericsConstraints, interpValues)
	if err != nil {
		return nil, err
	}
	if !meta.Noarch && (hasInterp || numericsActive) && len(joint) == 0 {
		// Required dimension with no admitted values: unsatisfiable, which
		// is a legitimate silent empty result.
		b.logger.Debug("empty build matrix", "package", meta.Name)
		return []Case{}, nil
	}

	dims := make([][]Case, 0, 1+len(simpleOrder))
	if len(joint) > 0 {
		dims = append(dims, joint)
	}
	for _, name := range simpleOrder {
		values := simpleValues[name]
		// A single qualifying value is no variation at all: the column is
		// omitted rather than padded into every case.
		if len(values) < 2 {
			continue
		}
		column := make([]Case, len(values))
		for i, v := range values {
			column[i] = Case{Pin{name, v}}
		}
		dims = append(dims, column)
	}

	cases := cartesian(dims)
	sort.Slice(cases, func(i, j int) bool { return cases[i].String() < cases[j].String() })
	return cases, nil
}

// jointDimension computes the coupled interpreter/numerics dimension. With
// numerics inactive it degenerates to one fragment per interpreter value.
func (b *Builder) jointDimension(meta Metadata, idx index.Index, npSpec matchspec.Spec,
	numericsActive bool, numericsConstraints []matchspec.Spec, interpValues []string) ([]Case, error) {
	if meta.Noarch {
		return nil, nil
	}
	if !numericsActive {
		joint := make([]Case, 0, len(interpValues))
		for _, v := range interpValues {
			joint = append(joint, Case{Pin{b.table.Interpreter, v}})
		}
		return joint, nil
	}

	var joint []Case
	seen := make(map[string]bool)
	for _, rec := range idx.Records(b.table.Numerics) {
		if !b.matcher.Match(npSpec, rec.Version, rec.Build) {
			continue
		}
		if !b.matchAll(numericsConstraints, rec.Version, rec.Build) {
			continue
		}
		tag, ok := b.table.InterpreterTag(rec.Build)
		if !ok || !containsString(interpValues, tag) {
			continue
		}
		// The record's own declared interpreter constraint must admit its
		// embedded tag.
		admitted := true
		for _, depLine := range rec.Depends {
			dep, err := matchspec.Parse(depLine)
			if err != nil {
				return nil, fmt.Errorf("record %s-%s: %w", rec.Name, rec.Version, err)
			}
			if b.table.KindOf(dep.Name) == KindInterpreter && !b.matcher.Match(dep, tag, "") {
				admitted = false
				break
			}
		}
		if !admitted {
			continue
		}
		frag := Case{
			Pin{b.table.Interpreter, tag},
			Pin{b.table.Numerics, MajorMinor(rec.Version)},
		}
		if key := frag.String(); !seen[key] {
			seen[key] = true
			joint = append(joint, frag)
		}
	}
	return joint, nil
}

// stripWildcardMarker removes wildcard-marker clauses from a spec's
// constraint, leaving the remaining clauses and-ed as before.
func (b *Builder) stripWildcardMarker(s matchspec.Spec) matchspec.Spec {
	if !strings.Contains(s.Constraint, b.table.WildcardMarker) {
		return s
	}
	var kept []string
	for _, clause := range strings.Split(s.Constraint, ",") {
		if strings.TrimSpace(clause) != b.table.WildcardMarker {
			kept = append(kept, clause)
		}
	}
	s.Constraint = strings.Join(kept, ",")
	return s
}

func (b *Builder) matchAll(constraints []matchspec.Spec, version, build string) bool {
	for _, c := range constraints {
		if !b.matcher.Match(c, version, build) {
			return false
		}
	}
	return true
}

// cartesian combines dimension fragments into full cases. With no dimension
// at all the result is the singleton empty case.
func cartesian(dims [][]Case) []Case {
	cases := []Case{{}}
	for _, dim := range dims {
		next := make([]Case, 0, len(cases)*len(dim))
		for _, base := range cases {
			for _, frag := range dim {
				merged := make(Case, 0, len(base)+len(frag))
				merged = append(merged, base...)
				merged = append(merged, frag...)
				next = append(next, merged)
			}
		}
		cases = next
	}
	return cases
}

// firstSeenOrder extracts the distinct package names from requirement lines
// in order of first appearance.
func firstSeenOrder(lines []string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 || seen[fields[0]] {
			continue
		}
		seen[fields[0]] = true
		names = append(names, fields[0])
	}
	return names
}

func appendDistinct(values []string, v string) []string {
	if containsString(values, v) {
		return values
	}
	return append(values, v)
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
