package services

import (
	"github.com/maxaizer/job-keywords/internal/clients/serpapi"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/url"
	"strings"
	"testing"
)

func testPosting() serpapi.RawPosting {
	return serpapi.RawPosting{
		Title:       "Adjunct Faculty",
		CompanyName: "Austin Community College",
		Location:    "Austin, TX",
		Description: "Adjunct faculty needed to teach nursing. Nursing curriculum and pedagogy experience.",
		DetectedExtensions: serpapi.DetectedExtensions{
			Salary: "$50–$60 an hour",
		},
	}
}

func Test_MapPosting_ShouldCopyFieldsAndExtractKeywords(t *testing.T) {
	posting := testPosting()

	record, ok := MapPosting(posting)

	require.True(t, ok)
	assert.Equal(t, "Austin Community College", record.Company)
	assert.Equal(t, "Adjunct Faculty", record.Role)
	assert.Equal(t, "Austin, TX", record.Location)
	assert.Equal(t, "$50–$60 an hour", record.Salary)
	assert.NotEmpty(t, record.ATSKeywords)
	assert.Equal(t, "nursing", record.ATSKeywords[0])
	assert.LessOrEqual(t, len(record.ATSKeywords), 10)
}

func Test_MapPosting_WhenLocationAndSalaryMissing_ShouldUseDefaults(t *testing.T) {
	posting := testPosting()
	posting.Location = ""
	posting.DetectedExtensions.Salary = ""

	record, ok := MapPosting(posting)

	require.True(t, ok)
	assert.Equal(t, models.DefaultJobLocation, record.Location)
	assert.Equal(t, models.DefaultSalary, record.Salary)
}

func Test_MapPosting_WhenDescriptionMissing_ShouldDropPosting(t *testing.T) {
	posting := testPosting()
	posting.Description = ""

	_, ok := MapPosting(posting)
	assert.False(t, ok)

	posting.Description = "   \n"
	_, ok = MapPosting(posting)
	assert.False(t, ok)
}

func Test_MapPosting_WhenApplyLinkPresent_ShouldUseIt(t *testing.T) {
	posting := testPosting()
	posting.RelatedLinks = []serpapi.Link{
		{Link: "https://www.acc.edu", Text: "See web results for Austin Community College"},
		{Link: "https://jobs.acc.edu/123", Text: "View Job Posting"},
		{Link: "https://jobs.acc.edu/apply/123", Text: "APPLY directly"},
	}

	record, ok := MapPosting(posting)

	require.True(t, ok)
	assert.Equal(t, "https://jobs.acc.edu/123", record.ApplyURL)
}

func Test_MapPosting_WhenNoApplyLink_ShouldBuildSearchFallback(t *testing.T) {
	posting := testPosting()
	posting.RelatedLinks = []serpapi.Link{
		{Link: "https://www.acc.edu", Text: "See web results for Austin Community College"},
		{Link: "", Text: "Apply"},
	}

	record, ok := MapPosting(posting)
	require.True(t, ok)

	parsed, err := url.Parse(record.ApplyURL)
	require.NoError(t, err)
	assert.Equal(t, "www.google.com", parsed.Host)
	assert.True(t, strings.HasPrefix(record.ApplyURL, "https://www.google.com/search?q="))
	assert.Contains(t, record.ApplyURL, url.QueryEscape("Adjunct Faculty"))
	assert.Contains(t, record.ApplyURL, url.QueryEscape("Austin Community College"))
	assert.Contains(t, record.ApplyURL, url.QueryEscape("site:higheredjobs.com"))
	assert.Equal(t, "Adjunct Faculty Austin Community College site:higheredjobs.com OR site:linkedin.com OR site:edjoin.org",
		parsed.Query().Get("q"))
}

func Test_MapPostings_ShouldKeepOrderAndCountDropped(t *testing.T) {
	first := testPosting()
	missing := testPosting()
	missing.Description = ""
	last := testPosting()
	last.Title = "Clinical Instructor"

	records, dropped := MapPostings([]serpapi.RawPosting{first, missing, last})

	assert.Equal(t, 1, dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "Adjunct Faculty", records[0].Role)
	assert.Equal(t, "Clinical Instructor", records[1].Role)
}

func Test_MapPostings_WhenEmpty_ShouldReturnEmptySlice(t *testing.T) {
	records, dropped := MapPostings(nil)

	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, 0, dropped)
}
