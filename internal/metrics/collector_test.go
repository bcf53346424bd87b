package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorEmptySnapshot(t *testing.T) {
	c := NewCollector()
	snap := c.Snapshot()

	assert.Nil(t, snap.Resolve)
	assert.Nil(t, snap.Fallback)
	assert.Empty(t, snap.Intents)
	assert.GreaterOrEqual(t, snap.UptimeSeconds, 0.0)
}

func TestCollectorTimings(t *testing.T) {
	c := NewCollector()
	c.RecordTiming(OpResolve, 10*time.Millisecond)
	c.RecordTiming(OpResolve, 30*time.Millisecond)
	c.RecordTiming(OpFallback, 500*time.Millisecond)

	snap := c.Snapshot()
	require.NotNil(t, snap.Resolve)
	assert.Equal(t, int64(2), snap.Resolve.Count)
	assert.Equal(t, int64(40), snap.Resolve.TotalTimeMs)
	assert.Equal(t, 20.0, snap.Resolve.AvgTimeMs)
	assert.Equal(t, int64(10), snap.Resolve.MinTimeMs)
	assert.Equal(t, int64(30), snap.Resolve.MaxTimeMs)

	require.NotNil(t, snap.Fallback)
	assert.Equal(t, int64(1), snap.Fallback.Count)
}

func TestCollectorIntents(t *testing.T) {
	c := NewCollector()
	c.RecordIntent("attribute_lookup")
	c.RecordIntent("attribute_lookup")
	c.RecordIntent("comparison")

	snap := c.Snapshot()
	assert.Equal(t, int64(2), snap.Intents["attribute_lookup"])
	assert.Equal(t, int64(1), snap.Intents["comparison"])
}

func TestCollectorConcurrentAccess(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordTiming(OpResolve, time.Millisecond)
				c.RecordIntent("comparison")
				_ = c.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot()
	require.NotNil(t, snap.Resolve)
	assert.Equal(t, int64(1000), snap.Resolve.Count)
	assert.Equal(t, int64(1000), snap.Intents["comparison"])
}
