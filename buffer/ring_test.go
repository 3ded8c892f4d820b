package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRing_StoreCopyToLatest(t *testing.T) {
	r := NewRing(4)
	r.Store([]float32{1, 2, 3, 4, 5, 6})

	dst := make([]float32, 3)
	n := r.CopyTo(dst)
	require.Equal(t, 3, n)
	assert.Equal(t, []float32{4, 5, 6}, dst)
	assert.Equal(t, 4, r.Available())
}

func TestRing_MoveToFIFO(t *testing.T) {
	r := NewRing(8)
	r.Store([]float32{1, 2, 3})

	dst := make([]float32, 2)
	n := r.MoveTo(dst)
	require.Equal(t, 2, n)
	assert.Equal(t, []float32{1, 2}, dst)

	dst2 := make([]float32, 5)
	n2 := r.MoveTo(dst2)
	require.Equal(t, 1, n2)
	assert.Equal(t, float32(3), dst2[0])
}

func TestRing_CopyToDoesNotAffectConsumeCursor(t *testing.T) {
	r := NewRing(4)
	r.Store([]float32{1, 2, 3, 4})

	r.CopyTo(make([]float32, 2))
	dst := make([]float32, 4)
	n := r.MoveTo(dst)
	require.Equal(t, 4, n)
	assert.Equal(t, []float32{1, 2, 3, 4}, dst)
}

func TestRing_StoreResetsConsumeCursorOnFill(t *testing.T) {
	r := NewRing(4)
	r.Store([]float32{1, 2})
	r.MoveTo(make([]float32, 1)) // consume the 1

	r.Store([]float32{3, 4, 5}) // fills to capacity, should reset consume cursor
	dst := make([]float32, 4)
	n := r.MoveTo(dst)
	require.Equal(t, 4, n)
	assert.Equal(t, []float32{2, 3, 4, 5}, dst)
}

func TestRing_PropertyFIFOAndBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 64).Draw(t, "capacity")
		r := NewRing(capacity)

		var consumedLog []float32
		var everStored []float32

		ops := rapid.IntRange(1, 40).Draw(t, "ops")
		for i := 0; i < ops; i++ {
			if rapid.Bool().Draw(t, "isStore") {
				n := rapid.IntRange(0, capacity*2).Draw(t, "storeLen")
				xs := make([]float32, n)
				for j := range xs {
					v := rapid.Float32Range(-1, 1).Draw(t, "sample")
					xs[j] = v
				}
				r.Store(xs)
				everStored = append(everStored, xs...)
			} else {
				n := rapid.IntRange(0, capacity).Draw(t, "moveLen")
				dst := make([]float32, n)
				got := r.MoveTo(dst)
				if got > n {
					t.Fatalf("MoveTo returned more than requested: %d > %d", got, n)
				}
				consumedLog = append(consumedLog, dst[:got]...)
			}
			if r.Available() > capacity {
				t.Fatalf("available %d exceeds capacity %d", r.Available(), capacity)
			}
		}

		// Everything ever consumed must be a prefix of what was overwritten-or-not;
		// specifically, FIFO order means consumedLog must appear as a (possibly
		// truncated due to overwrite) subsequence in arrival order of everStored.
		if len(consumedLog) > 0 {
			idx := indexOfSubsequence(everStored, consumedLog)
			if idx == -1 {
				t.Fatalf("consumed samples %v not an in-order subsequence of stored %v", consumedLog, everStored)
			}
		}
	})
}

// indexOfSubsequence finds needle as an in-order (not necessarily
// contiguous) subsequence of haystack and returns the index where its first
// element matched, or -1 if it is not one.
func indexOfSubsequence(haystack, needle []float32) int {
	if len(needle) == 0 {
		return 0
	}
	start, j := -1, 0
	for i := 0; i < len(haystack) && j < len(needle); i++ {
		if haystack[i] == needle[j] {
			if j == 0 {
				start = i
			}
			j++
		}
	}
	if j < len(needle) {
		return -1
	}
	return start
}
