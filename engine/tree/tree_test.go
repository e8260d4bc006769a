package tree

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLabeled(a *Arena, label string) *Node {
	return a.NewNode(label)
}

func TestAddChildAppendsInOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1 := newLabeled(a, "c1")
	c2 := newLabeled(a, "c2")
	root.AddChild(c1)
	root.AddChild(c2)

	kids := root.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "c1", kids[0].Payload)
	assert.Equal(t, "c2", kids[1].Payload)
	assert.Equal(t, 2, root.ChildCount())
	assert.Same(t, root, c1.Parent())
}

func TestAddChildDetachesFromPreviousParent(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root1 := newLabeled(a, "root1")
	root2 := newLabeled(a, "root2")
	child := newLabeled(a, "child")
	root1.AddChild(child)
	root2.AddChild(child)

	assert.Equal(t, 0, root1.ChildCount())
	assert.Equal(t, 1, root2.ChildCount())
	assert.Same(t, root2, child.Parent())
}

func TestDetachFixesSiblingLinksWhenRemovingMiddleChild(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1, c2, c3 := newLabeled(a, "c1"), newLabeled(a, "c2"), newLabeled(a, "c3")
	root.AddChild(c1)
	root.AddChild(c2)
	root.AddChild(c3)

	c2.Detach()

	kids := root.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "c1", kids[0].Payload)
	assert.Equal(t, "c3", kids[1].Payload)
	assert.Nil(t, c2.Parent())
}

func TestChildAndIndexOfChild(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1, c2 := newLabeled(a, "c1"), newLabeled(a, "c2")
	root.AddChild(c1)
	root.AddChild(c2)

	got, ok := root.Child(1)
	assert.True(t, ok)
	assert.Same(t, c2, got)

	_, ok = root.Child(5)
	assert.False(t, ok)

	assert.Equal(t, 0, root.IndexOfChild(c1))
	assert.Equal(t, 1, root.IndexOfChild(c2))
	assert.Equal(t, -1, root.IndexOfChild(newLabeled(a, "stray")))
}

func TestSetChildAtInsertsBeforeAnchor(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1, c2 := newLabeled(a, "c1"), newLabeled(a, "c2")
	root.AddChild(c1)
	root.AddChild(c2)

	inserted := newLabeled(a, "inserted")
	root.SetChildAt(1, inserted)

	kids := root.Children()
	require.Len(t, kids, 3)
	assert.Equal(t, "c1", kids[0].Payload)
	assert.Equal(t, "inserted", kids[1].Payload)
	assert.Equal(t, "c2", kids[2].Payload)
}

func TestSetChildAtBeyondLengthAppends(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1 := newLabeled(a, "c1")
	root.AddChild(c1)

	tail := newLabeled(a, "tail")
	root.SetChildAt(10, tail)

	kids := root.Children()
	require.Len(t, kids, 2)
	assert.Equal(t, "tail", kids[1].Payload)
}

func TestAddChildAdoptsNodeFromDifferentArena(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a1 := NewArena()
	a2 := NewArena()
	root := a1.NewNode("root")
	foreign := a2.NewNode("foreign")

	root.AddChild(foreign)

	kids := root.Children()
	require.Len(t, kids, 1)
	assert.Equal(t, "foreign", kids[0].Payload)
	assert.Same(t, root.Arena(), kids[0].Arena(), "adopted node must belong to the new parent's arena")
}

func TestWalkVisitsPreOrder(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1, c2 := newLabeled(a, "c1"), newLabeled(a, "c2")
	gc := newLabeled(a, "gc")
	root.AddChild(c1)
	root.AddChild(c2)
	c1.AddChild(gc)

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Payload.(string))
		return true
	})
	assert.Equal(t, []string{"root", "c1", "gc", "c2"}, visited)
}

func TestWalkStopsEarlyAndSkipsRemainingSiblings(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a := NewArena()
	root := newLabeled(a, "root")
	c1, c2 := newLabeled(a, "c1"), newLabeled(a, "c2")
	gc := newLabeled(a, "gc")
	root.AddChild(c1)
	root.AddChild(c2)
	c1.AddChild(gc)

	var visited []string
	root.Walk(func(n *Node) bool {
		visited = append(visited, n.Payload.(string))
		return n.Payload.(string) != "c1"
	})
	assert.Equal(t, []string{"root", "c1"}, visited, "returning false for c1 stops descent into gc and skips c2")
}

func TestEnsureArenaLazilyCreatesArenaForZeroValueNode(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	var n Node
	assert.NotNil(t, n.Arena())
	assert.Equal(t, 0, n.ChildCount())
}
