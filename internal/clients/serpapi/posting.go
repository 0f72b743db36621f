package serpapi

type SearchResponse struct {
	JobsResults       []RawPosting      `json:"jobs_results"`
	SearchInformation SearchInformation `json:"search_information"`
	Pagination        Pagination        `json:"serpapi_pagination"`
}

type SearchInformation struct {
	TotalResults int `json:"total_results"`
}

type Pagination struct {
	NextPageToken string `json:"next_page_token"`
}

// RawPosting is one entry of jobs_results, reduced to the fields the mapper reads.
type RawPosting struct {
	Title              string             `json:"title"`
	CompanyName        string             `json:"company_name"`
	Location           string             `json:"location"`
	Description        string             `json:"description"`
	DetectedExtensions DetectedExtensions `json:"detected_extensions"`
	RelatedLinks       []Link             `json:"related_links"`
}

type DetectedExtensions struct {
	Salary string `json:"salary"`
}

type Link struct {
	Link string `json:"link"`
	Text string `json:"text"`
}
