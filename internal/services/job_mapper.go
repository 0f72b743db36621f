package services

import (
	"fmt"
	"github.com/maxaizer/job-keywords/internal/clients/serpapi"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/maxaizer/job-keywords/internal/keywords"
	"github.com/samber/lo"
	"net/url"
	"strings"
)

const (
	fallbackSearchURL   = "https://www.google.com/search?q="
	fallbackSiteFilters = "site:higheredjobs.com OR site:linkedin.com OR site:edjoin.org"
)

var applyLinkMarkers = []string{"apply", "job posting"}

// MapPosting converts a provider posting into a JobRecord.
// Postings without a description are dropped and reported with false.
func MapPosting(posting serpapi.RawPosting) (models.JobRecord, bool) {
	if strings.TrimSpace(posting.Description) == "" {
		return models.JobRecord{}, false
	}

	return models.JobRecord{
		Company:     posting.CompanyName,
		Role:        posting.Title,
		Location:    lo.Ternary(posting.Location != "", posting.Location, models.DefaultJobLocation),
		Salary:      lo.Ternary(posting.DetectedExtensions.Salary != "", posting.DetectedExtensions.Salary, models.DefaultSalary),
		ApplyURL:    resolveApplyURL(posting),
		ATSKeywords: keywords.Extract(posting.Description),
	}, true
}

// MapPostings maps every posting in order and returns how many were dropped.
func MapPostings(postings []serpapi.RawPosting) ([]models.JobRecord, int) {
	records := lo.FilterMap(postings, func(posting serpapi.RawPosting, _ int) (models.JobRecord, bool) {
		return MapPosting(posting)
	})
	return records, len(postings) - len(records)
}

func resolveApplyURL(posting serpapi.RawPosting) string {
	link, found := lo.Find(posting.RelatedLinks, func(link serpapi.Link) bool {
		if link.Link == "" {
			return false
		}
		text := strings.ToLower(link.Text)
		return lo.SomeBy(applyLinkMarkers, func(marker string) bool {
			return strings.Contains(text, marker)
		})
	})
	if found {
		return link.Link
	}

	query := fmt.Sprintf("%s %s %s", posting.Title, posting.CompanyName, fallbackSiteFilters)
	return fallbackSearchURL + url.QueryEscape(query)
}
