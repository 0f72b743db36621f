package services

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sync/atomic"
	"testing"
	"time"
)

type countingCache struct {
	size  int
	calls atomic.Int32
}

func (c *countingCache) Len() int {
	c.calls.Add(1)
	return c.size
}

func Test_NewCacheMonitor_WhenScheduleInvalid_ShouldReturnError(t *testing.T) {
	_, err := NewCacheMonitor(&countingCache{}, "every minute", 10)
	assert.Error(t, err)
}

func Test_NewCacheMonitor_WhenWarnEntriesNegative_ShouldReturnError(t *testing.T) {
	_, err := NewCacheMonitor(&countingCache{}, "@every 1m", -1)
	assert.Error(t, err)
}

func Test_CacheMonitor_ShouldReportOnSchedule(t *testing.T) {
	cache := &countingCache{size: 42}
	monitor, err := NewCacheMonitor(cache, "@every 1s", 10)
	require.NoError(t, err)
	defer monitor.Stop()

	assert.Eventually(t, func() bool {
		return cache.calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func Test_CacheMonitor_Report_ShouldReadCacheSize(t *testing.T) {
	cache := NewResultCache(time.Minute)
	defer cache.Close()
	cache.Put("nurse-Texas", testRecords("nurse"))

	monitor, err := NewCacheMonitor(cache, "@every 1h", 0)
	require.NoError(t, err)
	defer monitor.Stop()

	assert.NotPanics(t, monitor.report)
	assert.Equal(t, 1, cache.Len())
}
