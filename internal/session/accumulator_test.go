package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccumulator_StartNewQuery(t *testing.T) {
	a := NewAccumulator("dune")
	a.ApplyFetchResult(makeBooks("a", 3), 30, true)
	a.ApplyFetchResult(makeBooks("b", 3), 30, false)

	a.StartNewQuery("tolkien")

	assert.Equal(t, "tolkien", a.Query())
	assert.Equal(t, 1, a.CurrentPage())
	assert.Equal(t, 0, a.Total())
	assert.Equal(t, 0, a.Len())
	assert.False(t, a.Loaded())
	assert.False(t, a.HasMore())
}

func TestAccumulator_FirstPageReplaces(t *testing.T) {
	a := NewAccumulator("dune")
	a.ApplyFetchResult(makeBooks("old", 7), 7, true)

	a.ApplyFetchResult(makeBooks("new", 4), 12, true)

	assert.Equal(t, 4, a.Len(), "first page replaces rather than appends")
	assert.Equal(t, 12, a.Total())
	assert.Equal(t, 1, a.CurrentPage(), "first page does not advance the cursor")
	assert.True(t, a.Loaded())
}

func TestAccumulator_LoadMoreAppends(t *testing.T) {
	a := NewAccumulator("tolkien")
	a.ApplyFetchResult(makeBooks("p1", 10), 25, true)
	before := a.Len()

	a.ApplyFetchResult(makeBooks("p2", 10), 25, false)

	assert.Equal(t, before+10, a.Len())
	assert.Equal(t, 2, a.CurrentPage())
	records := a.Records()
	assert.Equal(t, "p1 00", records[0].SortTitle())
	assert.Equal(t, "p2 00", records[10].SortTitle(), "arrival order is preserved")
}

func TestAccumulator_TotalOverwrittenOnEveryPage(t *testing.T) {
	a := NewAccumulator("q")
	a.ApplyFetchResult(makeBooks("p1", 10), 25, true)
	assert.True(t, a.HasMore())

	// Server now under-reports; the latest total wins.
	a.ApplyFetchResult(makeBooks("p2", 10), 18, false)
	assert.Equal(t, 18, a.Total())
	assert.False(t, a.HasMore())
}

func TestAccumulator_HasMore(t *testing.T) {
	tests := []struct {
		name  string
		count int
		total int
		want  bool
	}{
		{"unknown total", 0, 0, false},
		{"fewer than total", 10, 25, true},
		{"exactly total", 2, 2, false},
		{"over-delivered", 12, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAccumulator("q")
			a.ApplyFetchResult(makeBooks("x", tt.count), tt.total, true)
			assert.Equal(t, tt.want, a.HasMore())
		})
	}
}

func TestAccumulator_RecordsIsACopy(t *testing.T) {
	a := NewAccumulator("q")
	input := makeBooks("x", 2)
	a.ApplyFetchResult(input, 2, true)

	input[0].Key = "mutated"
	out := a.Records()
	out[1].Key = "mutated too"

	fresh := a.Records()
	assert.Equal(t, "/works/x0", fresh[0].Key)
	assert.Equal(t, "/works/x1", fresh[1].Key)
}
