package rank

import (
	"context"
	"hash/fnv"
	"strings"
)

// hashDimensions is small enough to keep the default offline backend cheap;
// it only needs to preserve rough lexical overlap between goal and
// candidate descriptions, not genuine semantic structure.
const hashDimensions = 64

// hashEngine is a deterministic, dependency-free bag-of-words embedding:
// each token hashes into a bucket, giving two descriptions that share
// vocabulary a nonzero cosine similarity without any network call. It is
// the default so `prove` and `describe` work offline and reproducibly.
type hashEngine struct{}

func newHashEngine() *hashEngine { return &hashEngine{} }

func (h *hashEngine) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, hashDimensions)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		fh := fnv.New32a()
		_, _ = fh.Write([]byte(tok))
		vec[fh.Sum32()%hashDimensions]++
	}
	return vec, nil
}

func (h *hashEngine) Dimensions() int { return hashDimensions }
func (h *hashEngine) Name() string    { return "hash" }
