package matrix

import "strings"

// Kind classifies how a dependency participates in the matrix.
type Kind int

const (
	// KindSimple is an independent matrix axis pinned at full version
	// granularity.
	KindSimple Kind = iota
	// KindInterpreter is the runtime whose major.minor version defines
	// ABI-relevant build variants.
	KindInterpreter
	// KindNumerics is the ABI-sensitive dependency whose builds are each
	// tied to one interpreter major.minor and must be paired with it.
	KindNumerics
)

// Granularity quotients a full version string down to the key at which this
// dimension kind varies: major.minor for the interpreter and numerics kinds,
// the full string for simple dimensions.
func (k Kind) Granularity(version string) string {
	switch k {
	case KindInterpreter, KindNumerics:
		return MajorMinor(version)
	default:
		return version
	}
}

// MajorMinor truncates a version string to its first two dot-separated
// components ("2.7.2" becomes "2.7").
func MajorMinor(version string) string {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

// Table assigns dimension kinds to dependency names.
type Table struct {
	// Interpreter is the runtime dependency name (e.g. "python").
	Interpreter string
	// Numerics is the ABI-sensitive dependency name (e.g. "numpy").
	Numerics string
	// TagPrefix prefixes the interpreter version tag embedded in build
	// identifiers (e.g. "py" in "py27_0").
	TagPrefix string
	// WildcardMarker is the clause marking a requirement as "vary across
	// ABI-compatible builds" (e.g. "x.x").
	WildcardMarker string
}

// DefaultTable returns the conventional assignment: python as interpreter,
// numpy as numerics, "py" build tags and the "x.x" wildcard marker.
func DefaultTable() Table {
	return Table{
		Interpreter:    "python",
		Numerics:       "numpy",
		TagPrefix:      "py",
		WildcardMarker: "x.x",
	}
}

// KindOf returns the dimension kind for a dependency name.
func (t Table) KindOf(name string) Kind {
	switch name {
	case t.Interpreter:
		return KindInterpreter
	case t.Numerics:
		return KindNumerics
	default:
		return KindSimple
	}
}

// InterpreterTag extracts the interpreter major.minor tag from a build
// identifier: "py27_0" yields "2.7", "py310_2" yields "3.10". The first
// digit after the prefix is the major version, the remaining digit run the
// minor.
func (t Table) InterpreterTag(build string) (string, bool) {
	rest, ok := strings.CutPrefix(build, t.TagPrefix)
	if !ok || rest == "" || !isDigit(rest[0]) {
		return "", false
	}
	major := rest[:1]
	minor := ""
	for _, r := range rest[1:] {
		if r < '0' || r > '9' {
			break
		}
		minor += string(r)
	}
	if minor == "" {
		return "", false
	}
	return major + "." + minor, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
