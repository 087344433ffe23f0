package orderedlist

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/wdlabelbuilder/internal/pointintime"
)

func ids(l *List) []string {
	var out []string
	for n := range l.All() {
		out = append(out, n.ID)
	}
	return out
}

func keys(l *List) []pointintime.Key {
	var out []pointintime.Key
	for n := range l.All() {
		out = append(out, n.Key)
	}
	return out
}

func requireSorted(t *testing.T, l *List) {
	t.Helper()
	ks := keys(l)
	require.Len(t, ks, l.Len(), "walk must visit every node once")
	for i := 1; i < len(ks); i++ {
		require.False(t, pointintime.Less(ks[i], ks[i-1]),
			"out of order at %d: %v before %v", i, ks[i-1], ks[i])
	}
}

func TestNewNode(t *testing.T) {
	n := NewNode("Q2052948", "eduskuntavaalit 1907")
	assert.Equal(t, "Q2052948", n.ID)
	assert.Equal(t, "eduskuntavaalit 1907", n.Label)
	assert.Equal(t, pointintime.Int(1907), n.Key)
}

func TestList_Empty(t *testing.T) {
	var l List
	assert.Equal(t, 0, l.Len())

	_, ok := l.Head()
	assert.False(t, ok)
	_, ok = l.Tail()
	assert.False(t, ok)
	assert.Empty(t, l.Nodes())
}

func TestList_SingleNode(t *testing.T) {
	l := New()
	l.Insert(NewNode("Q1", "vaalit 1907"))

	require.Equal(t, 1, l.Len())
	head, ok := l.Head()
	require.True(t, ok)
	tail, ok := l.Tail()
	require.True(t, ok)
	assert.Equal(t, head, tail)
	assert.Equal(t, "Q1", head.ID)
}

func TestList_TwoNodes(t *testing.T) {
	t.Run("larger appends", func(t *testing.T) {
		l := New()
		l.Insert(NewNode("a", "x 1"))
		l.Insert(NewNode("b", "x 2"))
		assert.Equal(t, []string{"a", "b"}, ids(l))
	})

	t.Run("smaller prepends", func(t *testing.T) {
		l := New()
		l.Insert(NewNode("a", "x 2"))
		l.Insert(NewNode("b", "x 1"))
		assert.Equal(t, []string{"b", "a"}, ids(l))

		head, _ := l.Head()
		tail, _ := l.Tail()
		assert.Equal(t, "b", head.ID)
		assert.Equal(t, "a", tail.ID)
	})

	t.Run("tie goes after", func(t *testing.T) {
		l := New()
		l.Insert(NewNode("a", "x 1"))
		l.Insert(NewNode("b", "y 1"))
		assert.Equal(t, []string{"a", "b"}, ids(l))
	})
}

func TestList_InsertionCases(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   []string
	}{
		{"new head", []string{"x 5", "x 9", "x 3"}, []string{"x 3", "x 5", "x 9"}},
		{"new tail", []string{"x 5", "x 9", "x 12"}, []string{"x 5", "x 9", "x 12"}},
		{"interior", []string{"x 1", "x 9", "x 5"}, []string{"x 1", "x 5", "x 9"}},
		{"interior deep", []string{"x 1", "x 9", "x 2", "x 3", "x 8", "x 4"}, []string{"x 1", "x 2", "x 3", "x 4", "x 8", "x 9"}},
		{"equal to tail", []string{"x 1", "x 9", "x 9"}, []string{"x 1", "x 9", "x 9"}},
		{"equal to head", []string{"x 1", "x 9", "x 1"}, []string{"x 1", "x 1", "x 9"}},
		{"numeric not lexicographic", []string{"x 9", "x 10", "x 100", "x 2"}, []string{"x 2", "x 9", "x 10", "x 100"}},
		{"leading tokens are lexicographic", []string{"9 x", "10 x", "2 x"}, []string{"10 x", "2 x", "9 x"}},
		{"seven node walkthrough", []string{"asd 5", "asd 9", "asd 3", "asd 4", "asd 1", "asd 2", "asd 12"},
			[]string{"asd 1", "asd 2", "asd 3", "asd 4", "asd 5", "asd 9", "asd 12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			for i, label := range tt.labels {
				l.Insert(NewNode(fmt.Sprintf("Q%d", i), label))
			}

			var got []string
			for n := range l.All() {
				got = append(got, n.Label)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.labels), l.Len())
			requireSorted(t, l)
		})
	}
}

func TestList_TiesAreFIFO(t *testing.T) {
	l := New()
	// Insert a run of equal keys around other keys; every tie keeps its
	// arrival order no matter which insertion case placed it.
	labels := []struct{ id, label string }{
		{"t1", "x 5"},
		{"lo", "x 1"},
		{"hi", "x 9"},
		{"t2", "x 5"},
		{"t3", "x 5"},
		{"h2", "x 9"},
		{"l2", "x 1"},
		{"t4", "x 5"},
	}
	for _, it := range labels {
		l.Insert(NewNode(it.id, it.label))
	}

	assert.Equal(t, []string{"lo", "l2", "t1", "t2", "t3", "t4", "hi", "h2"}, ids(l))

	tail, _ := l.Tail()
	assert.Equal(t, "h2", tail.ID)
}

func TestList_MixedVariants(t *testing.T) {
	l := New()
	l.Insert(NewNode("text", "Olympic Games Paris"))
	l.Insert(NewNode("token", "1907 eduskuntavaalit"))
	l.Insert(NewNode("int", "eduskuntavaalit 1908"))
	l.Insert(NewNode("empty", "two words"))

	// Int < Token < Text, then natural order within Text ("" < "Paris")
	assert.Equal(t, []string{"int", "token", "empty", "text"}, ids(l))
	requireSorted(t, l)
}

func TestList_DuplicateIDs(t *testing.T) {
	l := New()
	l.Insert(NewNode("Q1", "x 2"))
	l.Insert(NewNode("Q1", "x 1"))

	assert.Equal(t, 2, l.Len())
	assert.Equal(t, []string{"Q1", "Q1"}, ids(l))
}

func TestList_RandomizedSortedness(t *testing.T) {
	rng := rand.New(rand.NewPCG(1907, 1911))

	for round := 0; round < 50; round++ {
		l := New()
		n := 1 + rng.IntN(40)
		arrival := make(map[string]int, n)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("Q%d", i)
			arrival[id] = i
			l.Insert(NewNode(id, fmt.Sprintf("vaalit %d", rng.IntN(10))))
		}

		require.Equal(t, n, l.Len())
		requireSorted(t, l)

		// Stable among ties
		nodes := l.Nodes()
		for i := 1; i < len(nodes); i++ {
			if pointintime.Compare(nodes[i-1].Key, nodes[i].Key) == 0 {
				require.Less(t, arrival[nodes[i-1].ID], arrival[nodes[i].ID])
			}
		}

		head, _ := l.Head()
		tail, _ := l.Tail()
		assert.Equal(t, nodes[0].ID, head.ID)
		assert.Equal(t, nodes[len(nodes)-1].ID, tail.ID)
	}
}

func TestList_AllStopsEarly(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		l.Insert(NewNode(fmt.Sprintf("Q%d", i), fmt.Sprintf("x %d", i)))
	}

	seen := 0
	for range l.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestBuild(t *testing.T) {
	l := Build([]Record{
		{ID: "Q1853901", Label: "eduskuntavaalit 1908"},
		{ID: "Q2052948", Label: "eduskuntavaalit 1907"},
		{ID: "Q1571365", Label: "eduskuntavaalit 1909"},
	})

	require.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"Q2052948", "Q1853901", "Q1571365"}, ids(l))
}

func TestBuild_Empty(t *testing.T) {
	l := Build(nil)
	assert.Equal(t, 0, l.Len())
	_, ok := l.Head()
	assert.False(t, ok)
}
