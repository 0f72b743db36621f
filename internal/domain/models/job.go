package models

const (
	DefaultJobLocation = "Not specified"
	DefaultSalary      = "Not provided"
)

// JobRecord is the normalized form of one upstream posting. It is never modified after creation.
type JobRecord struct {
	Company     string   `json:"company"`
	Role        string   `json:"role"`
	Location    string   `json:"location"`
	Salary      string   `json:"salary"`
	ApplyURL    string   `json:"applyUrl"`
	ATSKeywords []string `json:"atsKeywords"`
}
