package matrix

import (
	"sort"
	"strconv"
	"strings"
)

// KeepTopNMajorVersions discards every case pinned to anything but the
// newest n major versions of each dependency column, each column ranked
// independently. n == 0 disables the reduction. Surviving cases keep their
// original relative order; the result never grows.
func KeepTopNMajorVersions(cases []Case, n int) []Case {
	if n <= 0 {
		return cases
	}

	majors := make(map[string]map[int]bool)
	for _, c := range cases {
		for _, p := range c {
			major, ok := majorVersion(p.Version)
			if !ok {
				continue
			}
			if majors[p.Name] == nil {
				majors[p.Name] = make(map[int]bool)
			}
			majors[p.Name][major] = true
		}
	}
	admitted := make(map[string]map[int]bool, len(majors))
	for name, set := range majors {
		admitted[name] = topN(set, n)
	}

	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		keep := true
		for _, p := range c {
			major, ok := majorVersion(p.Version)
			if ok && !admitted[p.Name][major] {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// KeepTopNMinorVersions discards every case pinned to anything but the
// newest n minor versions within each (dependency, major version) group.
// Major versions themselves are not reduced: two majors with many minors
// yield n x 2 surviving variants. n == 0 disables the reduction. Minor
// comparison is numeric, so "1.10" outranks "1.9".
func KeepTopNMinorVersions(cases []Case, n int) []Case {
	if n <= 0 {
		return cases
	}

	type group struct {
		name  string
		major int
	}
	minors := make(map[group]map[int]bool)
	for _, c := range cases {
		for _, p := range c {
			major, minor, ok := majorMinorVersion(p.Version)
			if !ok {
				continue
			}
			g := group{p.Name, major}
			if minors[g] == nil {
				minors[g] = make(map[int]bool)
			}
			minors[g][minor] = true
		}
	}
	admitted := make(map[group]map[int]bool, len(minors))
	for g, set := range minors {
		admitted[g] = topN(set, n)
	}

	out := make([]Case, 0, len(cases))
	for _, c := range cases {
		keep := true
		for _, p := range c {
			major, minor, ok := majorMinorVersion(p.Version)
			if ok && !admitted[group{p.Name, major}][minor] {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

// topN returns the n largest members of the set.
func topN(set map[int]bool, n int) map[int]bool {
	values := make([]int, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	if len(values) > n {
		values = values[:n]
	}
	top := make(map[int]bool, len(values))
	for _, v := range values {
		top[v] = true
	}
	return top
}

func majorVersion(version string) (int, bool) {
	major, err := strconv.Atoi(strings.SplitN(version, ".", 2)[0])
	return major, err == nil
}

func majorMinorVersion(version string) (major, minor int, ok bool) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
