package composition

import (
	"hash/fnv"
	"math/rand"
)

// Waveform returns bar heights in [0.2, 1.0) for a clip's preview
// rendering. The generator is seeded from the clip id, so the same clip
// always produces the same bars across re-renders; the values carry no
// audio meaning.
func Waveform(clipID string, bars int) []float64 {
	if bars <= 0 {
		return nil
	}
	h := fnv.New64a()
	h.Write([]byte(clipID))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	out := make([]float64, bars)
	for i := range out {
		out[i] = rng.Float64()*0.8 + 0.2
	}
	return out
}
