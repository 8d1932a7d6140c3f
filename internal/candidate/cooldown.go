package candidate

import (
	"sync"
	"time"

	"github.com/moznion/go-optional"
)

// Cooldown records when each symbol was last evaluated.
// Entries are created on the first evaluation and never removed.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
}

func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		mu:     sync.Mutex{},
		window: window,
		last:   make(map[string]time.Time),
	}
}

// TryAcquire records now for symbol and returns true when the previous evaluation
// is at least one window old, or when there was none. Otherwise nothing is recorded.
func (c *Cooldown) TryAcquire(symbol string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if last, ok := c.last[symbol]; ok && now.Sub(last) < c.window {
		return false
	}

	c.last[symbol] = now

	return true
}

// LastEvaluated returns the last recorded evaluation of symbol.
func (c *Cooldown) LastEvaluated(symbol string) optional.Option[time.Time] {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.last[symbol]
	if !ok {
		return optional.None[time.Time]()
	}

	return optional.Some(last)
}

// Remaining returns how long symbol stays cooling down at now.
func (c *Cooldown) Remaining(symbol string, now time.Time) time.Duration {
	last, err := c.LastEvaluated(symbol).Take()
	if err != nil {
		return 0
	}

	return max(c.window-now.Sub(last), 0)
}

func (c *Cooldown) Window() time.Duration {
	return c.window
}

func (c *Cooldown) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.last)
}
