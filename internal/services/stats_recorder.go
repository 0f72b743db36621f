package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-keywords/internal/domain/events"
	"github.com/maxaizer/job-keywords/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// SearchStatsRecorder turns served searches into metrics.
type SearchStatsRecorder struct{}

func NewSearchStatsRecorder(bus EventBus.Bus) (*SearchStatsRecorder, error) {
	r := &SearchStatsRecorder{}
	if err := bus.Subscribe(events.SearchServedTopic, r.onSearchServed); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SearchStatsRecorder) onSearchServed(event events.SearchServed) {
	metrics.ServedJobsCounter.Add(float64(len(event.Jobs)))

	if event.FromCache {
		log.Debugf("served %d jobs for %s from cache", len(event.Jobs), event.CacheKey)
		return
	}

	if event.Dropped > 0 {
		metrics.DroppedPostingsCounter.Add(float64(event.Dropped))
	}
	log.Debugf("served %d jobs for %s from provider, dropped %d postings without description",
		len(event.Jobs), event.CacheKey, event.Dropped)
}
