package models

const DefaultSearchLocation = "United States"

type SearchQuery struct {
	Keyword       string `json:"keyword" query:"keyword" form:"keyword" validate:"required"`
	Location      string `json:"location" query:"location" form:"location"`
	NextPageToken string `json:"next_page_token" query:"next_page_token" form:"next_page_token"`
}

func (q SearchQuery) WithDefaults() SearchQuery {
	if q.Location == "" {
		q.Location = DefaultSearchLocation
	}
	return q
}

type SearchResult struct {
	Jobs          []JobRecord `json:"jobs"`
	TotalResults  int         `json:"total_results"`
	NextPageToken *string     `json:"next_page_token"`
}
