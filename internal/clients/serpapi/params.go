package serpapi

import (
	"github.com/pkg/errors"
	"net/url"
)

const engineGoogleJobs = "google_jobs"

var ErrMissingAPIKey = errors.New("api key is required")

type SearchParameters struct {
	Query         string
	Location      string
	APIKey        string
	NextPageToken string
}

func (s SearchParameters) Validate() error {

	if s.Query == "" {
		return errors.New("query must not be empty")
	}

	if s.APIKey == "" {
		return ErrMissingAPIKey
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("engine", engineGoogleJobs)
	params.Add("q", s.Query)

	if s.Location != "" {
		params.Add("location", s.Location)
	}

	params.Add("api_key", s.APIKey)

	if s.NextPageToken != "" {
		params.Add("next_page_token", s.NextPageToken)
	}

	return params
}
