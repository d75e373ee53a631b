package replay

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"selfplay/game/gametest"
)

func fill(buf *Buffer, n int) {
	for i := 0; i < n; i++ {
		buf.Add(gametest.State{Plies: i}, []float32{1}, float32(i))
	}
}

func values(buf *Buffer) []float32 {
	out := []float32{}
	for _, e := range buf.Entries() {
		out = append(out, e.Value)
	}
	return out
}

func TestBuffer(t *testing.T) {
	t.Run("appending below capacity", func(t *testing.T) {
		buf := NewBuffer(5)
		fill(buf, 3)

		require.Equal(t, 3, buf.Len())
		require.Equal(t, 5, buf.Cap())
		require.Equal(t, []float32{0, 1, 2}, values(buf))
	})

	t.Run("evicting the oldest when full", func(t *testing.T) {
		buf := NewBuffer(3)
		fill(buf, 5)

		require.Equal(t, 3, buf.Len())
		require.Equal(t, []float32{2, 3, 4}, values(buf))
		require.Equal(t, gametest.State{Plies: 2}, buf.At(0).State)
	})

	t.Run("make room at capacity evicts exactly k oldest", func(t *testing.T) {
		buf := NewBuffer(5)
		fill(buf, 5)
		buf.MakeRoom(2)

		require.Equal(t, []float32{2, 3, 4}, values(buf), "Should keep the newest entries in order")
	})

	t.Run("make room with free space", func(t *testing.T) {
		buf := NewBuffer(5)
		fill(buf, 3)
		buf.MakeRoom(2)
		require.Equal(t, 3, buf.Len(), "Two slots are already free")

		buf.MakeRoom(3)
		require.Equal(t, []float32{1, 2}, values(buf))
	})

	t.Run("make room beyond capacity empties", func(t *testing.T) {
		buf := NewBuffer(3)
		fill(buf, 3)
		buf.MakeRoom(10)

		require.Equal(t, 0, buf.Len())
	})

	t.Run("updating values in place", func(t *testing.T) {
		buf := NewBuffer(3)
		fill(buf, 2)
		buf.SetValue(1, -1)

		require.Equal(t, float32(-1), buf.At(1).Value)
	})

	t.Run("indexing after wrapping around", func(t *testing.T) {
		buf := NewBuffer(4)
		fill(buf, 6)
		buf.SetValue(3, -1)

		require.Equal(t, []float32{2, 3, 4, -1}, values(buf))
		require.Equal(t, gametest.State{Plies: 5}, buf.At(3).State)

		buf.MakeRoom(2)
		require.Equal(t, []float32{4, -1}, values(buf), "Eviction should continue from the oldest entry")
		fill(buf, 2)
		require.Equal(t, []float32{4, -1, 0, 1}, values(buf))
		require.Panics(t, func() { buf.At(4) })
	})

	t.Run("entries are a copy", func(t *testing.T) {
		buf := NewBuffer(2)
		fill(buf, 2)
		entries := buf.Entries()
		buf.SetValue(0, 9)

		require.Equal(t, float32(0), entries[0].Value, "Later updates should not change a snapshot")
	})

	t.Run("copying the policy", func(t *testing.T) {
		buf := NewBuffer(1)
		policy := []float32{0.5, 0.5}
		buf.Add(gametest.State{}, policy, 0)
		policy[0] = 1

		require.Equal(t, []float32{0.5, 0.5}, buf.At(0).Policy)
	})

	t.Run("panics without capacity", func(t *testing.T) {
		require.Panics(t, func() { NewBuffer(0) })
	})
}

func TestSampler(t *testing.T) {
	t.Run("covering every entry once", func(t *testing.T) {
		buf := NewBuffer(10)
		fill(buf, 7)
		sampler := NewSampler(buf, 3, false, rand.New(rand.NewPCG(1, 2)))

		seen := []float32{}
		sizes := []int{}
		for batch, ok := sampler.Next(); ok; batch, ok = sampler.Next() {
			sizes = append(sizes, batch.Size)
			seen = append(seen, batch.Values...)
			require.Len(t, batch.Features, 2*batch.Size, "Features are concatenated row by row")
			require.Len(t, batch.Policies, batch.Size)
		}

		require.Equal(t, []int{3, 3, 1}, sizes)
		require.ElementsMatch(t, []float32{0, 1, 2, 3, 4, 5, 6}, seen)
	})

	t.Run("dropping the short last batch", func(t *testing.T) {
		buf := NewBuffer(10)
		fill(buf, 7)
		sampler := NewSampler(buf, 3, true, rand.New(rand.NewPCG(1, 2)))

		count := 0
		for _, ok := sampler.Next(); ok; _, ok = sampler.Next() {
			count++
		}
		require.Equal(t, 2, count)
	})

	t.Run("rows stay aligned", func(t *testing.T) {
		buf := NewBuffer(4)
		fill(buf, 4)
		sampler := NewSampler(buf, 4, false, rand.New(rand.NewPCG(3, 4)))

		batch, ok := sampler.Next()
		require.True(t, ok)
		for i := 0; i < batch.Size; i++ {
			require.Equal(t, batch.Values[i], batch.Features[2*i], "Feature row should belong to the same entry")
		}
	})
}
