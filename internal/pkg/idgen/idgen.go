package idgen

import (
	"strconv"
	"sync"
	"time"
)

// Generator issues IDs of the form <prefix><unix-millis>.
// Two calls landing in the same millisecond would collide, so the stamp is
// bumped past the last issued one; IDs stay unique for the process lifetime.
type Generator struct {
	mu   sync.Mutex
	last int64
}

func New() *Generator {
	return &Generator{}
}

// Next returns a new ID with the given prefix.
func (g *Generator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now

	return prefix + strconv.FormatInt(now, 10)
}
