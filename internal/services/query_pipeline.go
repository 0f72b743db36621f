package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-keywords/internal/clients/serpapi"
	"github.com/maxaizer/job-keywords/internal/domain/events"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/maxaizer/job-keywords/internal/logger"
	"github.com/maxaizer/job-keywords/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"slices"
	"time"
)

const apiKeySetting = "SERPAPI_KEY"

type searchClient interface {
	Search(ctx context.Context, params serpapi.SearchParameters) (*serpapi.SearchResponse, error)
}

type QueryPipeline struct {
	bus      EventBus.Bus
	client   searchClient
	cache    *ResultCache
	apiKey   string
	coalesce bool
	inflight singleflight.Group
}

func NewQueryPipeline(bus EventBus.Bus, client searchClient, cache *ResultCache, apiKey string) *QueryPipeline {
	return &QueryPipeline{
		bus:    bus,
		client: client,
		cache:  cache,
		apiKey: apiKey,
	}
}

// SetCoalescing makes concurrent misses for the same query share a single upstream request.
// Disabled by default: every miss issues its own request and the last result stored wins.
func (p *QueryPipeline) SetCoalescing(enabled bool) {
	p.coalesce = enabled
}

func (p *QueryPipeline) Search(ctx context.Context, query models.SearchQuery) (*models.SearchResult, error) {

	query = query.WithDefaults()

	key, err := CacheKey(query.Keyword, query.Location)
	if err != nil {
		return nil, err
	}

	if p.apiKey == "" {
		return nil, &models.ConfigurationError{Setting: apiKeySetting}
	}

	if records, found := p.cache.Get(key); found {
		metrics.CacheLookupsCounter.WithLabelValues("hit").Inc()
		p.publish(events.SearchServed{CacheKey: key, FromCache: true, Jobs: records})
		return &models.SearchResult{Jobs: records, TotalResults: len(records)}, nil
	}
	metrics.CacheLookupsCounter.WithLabelValues("miss").Inc()

	if !p.coalesce {
		return p.fetch(ctx, key, query)
	}

	return p.fetchShared(ctx, key, query)
}

// fetchShared joins or starts the in-flight request for the query. The request itself is detached
// from any single caller, so a caller that goes away only abandons its own wait.
func (p *QueryPipeline) fetchShared(ctx context.Context, key string, query models.SearchQuery) (*models.SearchResult, error) {

	flight := p.inflight.DoChan(key+"\x00"+query.NextPageToken, func() (any, error) {
		return p.fetch(context.WithoutCancel(ctx), key, query)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		result := res.Val.(*models.SearchResult)
		if !res.Shared {
			return result, nil
		}
		copied := *result
		copied.Jobs = slices.Clone(result.Jobs)
		return &copied, nil
	}
}

func (p *QueryPipeline) fetch(ctx context.Context, key string, query models.SearchQuery) (*models.SearchResult, error) {

	start := time.Now()
	response, err := p.client.Search(ctx, serpapi.SearchParameters{
		Query:         query.Keyword,
		Location:      query.Location,
		APIKey:        p.apiKey,
		NextPageToken: query.NextPageToken,
	})
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil, p.classifyUpstreamError(key, err)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())

	records, dropped := MapPostings(response.JobsResults)
	p.cache.Put(key, records)

	var nextPageToken *string
	if token := response.Pagination.NextPageToken; token != "" {
		nextPageToken = &token
	}

	p.publish(events.SearchServed{CacheKey: key, Jobs: records, Dropped: dropped})

	return &models.SearchResult{
		Jobs:          records,
		TotalResults:  response.SearchInformation.TotalResults,
		NextPageToken: nextPageToken,
	}, nil
}

func (p *QueryPipeline) classifyUpstreamError(key string, err error) error {

	if errors.Is(err, serpapi.ErrMissingAPIKey) {
		return &models.ConfigurationError{Setting: apiKeySetting}
	}

	log.WithField(logger.ErrorTypeField, logger.ErrorTypeSearchApi).
		Errorf("failed to fetch jobs for %s: %v", key, err)

	var apiErr *serpapi.APIError
	if errors.As(err, &apiErr) {
		return &models.UpstreamError{
			Message: "job search provider returned an error",
			Details: apiErr.Message,
			Err:     err,
		}
	}

	return &models.UpstreamError{
		Message: "failed to fetch jobs from search provider",
		Details: errors.Cause(err).Error(),
		Err:     err,
	}
}

func (p *QueryPipeline) publish(event events.SearchServed) {
	if p.bus != nil {
		p.bus.Publish(events.SearchServedTopic, event)
	}
}
