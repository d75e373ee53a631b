package replay

import "math/rand/v2"

// Batch holds row-major training arrays: one row of features, policy and value per entry
type Batch struct {
	Size     int
	Features []float32
	Policies []float32
	Values   []float32
}

// Sampler walks a random permutation of the buffer in minibatches
type Sampler struct {
	entries   []Entry
	order     []int
	batchSize int
	index     int
	dropLast  bool
}

// NewSampler snapshots the buffer's current entries. A short final batch is skipped when dropLast is set.
func NewSampler(buf *Buffer, batchSize int, dropLast bool, rng *rand.Rand) *Sampler {
	if batchSize <= 0 {
		panic("batch size must be positive")
	}
	entries := buf.Entries()
	return &Sampler{
		entries:   entries,
		order:     rng.Perm(len(entries)),
		batchSize: batchSize,
		dropLast:  dropLast,
	}
}

func (s *Sampler) Next() (Batch, bool) {
	next := min(s.index+s.batchSize, len(s.entries))
	if s.index >= len(s.entries) || (s.dropLast && next-s.index < s.batchSize) {
		return Batch{}, false
	}

	batch := Batch{Size: next - s.index}
	for _, i := range s.order[s.index:next] {
		entry := s.entries[i]
		batch.Features = append(batch.Features, entry.State.Features()...)
		batch.Policies = append(batch.Policies, entry.Policy...)
		batch.Values = append(batch.Values, entry.Value)
	}
	s.index = next
	return batch, true
}
