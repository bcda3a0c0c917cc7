package store

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
)

const (
	workIDMin  = 10_000_000
	workIDMax  = 99_999_999
	maxRetries = 1000
)

// ErrIDExhaustion is returned when the work-ID generator could not find an
// unused 8-digit ID within its retry budget.
var ErrIDExhaustion = fmt.Errorf("work-id generator exhausted %d attempts without finding a free id", maxRetries)

// WorkIDGenerator issues unique 8-digit decimal work IDs within the
// process. It does not persist across restarts, and its used-ID set is
// never pruned — eviction from the work-info store only removes the
// record, not the reservation, because the generator's only job is
// in-process uniqueness, not bookkeeping for evicted IDs.
type WorkIDGenerator struct {
	mu   sync.Mutex
	used map[string]struct{}
}

// NewWorkIDGenerator creates an empty generator.
func NewWorkIDGenerator() *WorkIDGenerator {
	return &WorkIDGenerator{used: make(map[string]struct{})}
}

// Generate draws a uniform random 8-digit ID in [10000000, 99999999],
// retrying on collision with an already-issued ID, up to maxRetries times.
func (g *WorkIDGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	span := big.NewInt(workIDMax - workIDMin + 1)
	for attempt := 0; attempt < maxRetries; attempt++ {
		n, err := rand.Int(rand.Reader, span)
		if err != nil {
			return "", fmt.Errorf("drawing random work id: %w", err)
		}
		id := fmt.Sprintf("%d", workIDMin+n.Int64())
		if _, taken := g.used[id]; taken {
			continue
		}
		g.used[id] = struct{}{}
		return id, nil
	}
	return "", ErrIDExhaustion
}
