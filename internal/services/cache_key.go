package services

import (
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"strings"
)

const cacheKeySeparator = "-"

// CacheKey derives the result cache key for a query. Keyword and location are used verbatim,
// so "Nurse" and "nurse" are different keys. A keyword made only of whitespace counts as missing.
// The page token is not part of the key.
func CacheKey(keyword, location string) (string, error) {
	if strings.TrimSpace(keyword) == "" {
		return "", &models.ValidationError{Field: "keyword", Message: "keyword is required"}
	}
	if location == "" {
		location = models.DefaultSearchLocation
	}
	return keyword + cacheKeySeparator + location, nil
}
