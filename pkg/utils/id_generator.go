package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator produces prefixed entity ids and idempotency keys.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a new id generator with monotonic ULID entropy.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewID generates a prefixed entity id.
// Format: {prefix}_{ULID}
// Example: tr_01ARZ3NDEKTSV4RRFFQ69G5FAV
func (g *IDGenerator) NewID(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	return fmt.Sprintf("%s_%s", prefix, id.String())
}

// NewIdempotencyKey generates a request deduplication key.
// Format: {prefix}_{base36 millis}_{random base36}
// Example: ord_m1x2y3z4_k83hd72q
//
// Two calls produce different keys with overwhelming probability but not
// with certainty; collision handling belongs to the order engine. Not a
// security token.
func (g *IDGenerator) NewIdempotencyKey(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return fmt.Sprintf("%s_%s_%s", prefix, ts, randomBase36(8))
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	var sb strings.Builder
	max := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken;
			// fall back to a time-derived digit.
			sb.WriteByte(base36Alphabet[time.Now().UnixNano()%36])
			continue
		}
		sb.WriteByte(base36Alphabet[idx.Int64()])
	}
	return sb.String()
}
