package dag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_Sort(t *testing.T) {
	g := New()
	g.Add("app", "lib", "tools")
	g.Add("lib", "base")
	g.Add("base")
	g.Add("tools", "base")

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, name := range order {
		pos[name] = i
	}
	assert.Less(t, pos["base"], pos["lib"])
	assert.Less(t, pos["base"], pos["tools"])
	assert.Less(t, pos["lib"], pos["app"])
	assert.Less(t, pos["tools"], pos["app"])
}

func TestGraph_Sort_Deterministic(t *testing.T) {
	g := New()
	g.Add("c")
	g.Add("a")
	g.Add("b")

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestGraph_Sort_UnknownDependencyIgnored(t *testing.T) {
	g := New()
	g.Add("app", "not-buildable-here")

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, order)
}

func TestGraph_Sort_Cycle(t *testing.T) {
	g := New()
	g.Add("a", "b")
	g.Add("b", "a")

	_, err := g.Sort()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestGraph_Add_SelfDependencyIgnored(t *testing.T) {
	g := New()
	g.Add("a", "a")

	order, err := g.Sort()
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, order)
}
