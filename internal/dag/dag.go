// Package dag orders recipes by their build dependencies. It supports cycle
// detection and deterministic topological sorting over the subgraph of
// recipes buildable from one directory.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed acyclic dependency graph over recipe names.
type Graph struct {
	nodes map[string]bool
	deps  map[string][]string // node -> its dependencies
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		deps:  make(map[string][]string),
	}
}

// Add registers a recipe and the recipes it depends on. Dependencies naming
// unknown recipes are ignored at sort time, so callers may add nodes in any
// order.
func (g *Graph) Add(name string, deps ...string) {
	g.nodes[name] = true
	for _, dep := range deps {
		if dep == name {
			continue
		}
		if !contains(g.deps[name], dep) {
			g.deps[name] = append(g.deps[name], dep)
		}
	}
}

// Len returns the number of registered recipes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Sort returns the recipe names in build order: dependencies before
// dependents, ties broken alphabetically. A dependency cycle is an error
// naming the cycle.
func (g *Graph) Sort() ([]string, error) {
	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(g.nodes))
	order := make([]string, 0, len(g.nodes))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle: %v", append(path, name))
		}
		state[name] = visiting
		for _, dep := range g.deps[name] {
			if !g.nodes[dep] {
				continue
			}
			if err := visit(dep, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
