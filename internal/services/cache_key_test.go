package services

import (
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_CacheKey_ShouldJoinKeywordAndLocation(t *testing.T) {
	key, err := CacheKey("nurse", "Texas")

	assert.NoError(t, err)
	assert.Equal(t, "nurse-Texas", key)
}

func Test_CacheKey_WhenLocationEmpty_ShouldUseDefaultLocation(t *testing.T) {
	key, err := CacheKey("nurse", "")

	assert.NoError(t, err)
	assert.Equal(t, "nurse-United States", key)
}

func Test_CacheKey_ShouldBeCaseSensitiveAndStable(t *testing.T) {
	first, _ := CacheKey("Nurse", "Texas")
	second, _ := CacheKey("Nurse", "Texas")
	lower, _ := CacheKey("nurse", "Texas")

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, lower)
}

func Test_CacheKey_WhenKeywordEmpty_ShouldReturnValidationError(t *testing.T) {
	_, err := CacheKey("", "Texas")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "keyword", validationErr.Field)
}

func Test_CacheKey_WhenKeywordIsWhitespace_ShouldReturnValidationError(t *testing.T) {
	_, err := CacheKey(" \t ", "Texas")

	var validationErr *models.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func Test_CacheKey_ShouldKeepSurroundingWhitespaceInKey(t *testing.T) {
	key, err := CacheKey(" nurse", "Texas")

	assert.NoError(t, err)
	assert.Equal(t, " nurse-Texas", key)
}
