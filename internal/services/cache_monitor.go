package services

import (
	"github.com/maxaizer/job-keywords/internal/logger"
	"github.com/maxaizer/job-keywords/internal/metrics"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type sizedCache interface {
	Len() int
}

// CacheMonitor periodically publishes the result cache size. The cache has no capacity bound,
// so it also warns once the size passes warnEntries.
type CacheMonitor struct {
	cache       sizedCache
	cron        *cron.Cron
	warnEntries int
}

func NewCacheMonitor(cache sizedCache, schedule string, warnEntries int) (*CacheMonitor, error) {

	if warnEntries < 0 {
		return nil, errors.New("warn entries can't be negative")
	}

	m := &CacheMonitor{
		cache:       cache,
		cron:        cron.New(),
		warnEntries: warnEntries,
	}

	_, err := m.cron.AddFunc(schedule, m.report)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid cache monitor schedule %q", schedule)
	}

	m.cron.Start()
	log.Infof("cache monitor started, schedule: %s, warn entries: %d", schedule, warnEntries)
	return m, nil
}

func (m *CacheMonitor) Stop() {
	<-m.cron.Stop().Done()
}

func (m *CacheMonitor) report() {
	entries := m.cache.Len()
	metrics.CacheEntries.Set(float64(entries))

	if m.warnEntries > 0 && entries > m.warnEntries {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Warnf("result cache holds %d entries, above the %d warning threshold", entries, m.warnEntries)
	}
}
