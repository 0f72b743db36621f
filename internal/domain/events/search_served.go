package events

import "github.com/maxaizer/job-keywords/internal/domain/models"

var SearchServedTopic = "SearchServedEvent"

type SearchServed struct {
	CacheKey  string
	FromCache bool
	Jobs      []models.JobRecord
	Dropped   int
}
