package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFloodLimiter_SlidingWindow(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(2, time.Second)
	now := time.Unix(100, 0)
	rl.now = func() time.Time { return now }

	req.True(rl.Allow("a"))
	req.True(rl.Allow("a"))
	req.False(rl.Allow("a"))
	// Other connections have their own window
	req.True(rl.Allow("b"))

	// When the window slides past the first attempts
	now = now.Add(1500 * time.Millisecond)

	// Then the connection may send again
	req.True(rl.Allow("a"))
}

func TestFloodLimiter_Forget(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(1, time.Minute)

	req.True(rl.Allow("a"))
	req.False(rl.Allow("a"))
	rl.Forget("a")
	req.True(rl.Allow("a"))
}

func TestFloodLimiter_Disabled(t *testing.T) {
	req := require.New(t)
	rl := NewFloodLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		req.True(rl.Allow("a"))
	}
}
