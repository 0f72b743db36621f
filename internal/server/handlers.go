package server

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/maxaizer/job-keywords/internal/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type healthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	CacheEntries int    `json:"cache_entries"`
}

// searchJobs accepts the query from the query string, a JSON body or a form body. Body values win.
func (s *Server) searchJobs(c echo.Context) error {

	var query models.SearchQuery
	binder := &echo.DefaultBinder{}

	if err := binder.BindQueryParams(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query parameters"})
	}
	if err := binder.BindBody(c, &query); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if err := c.Validate(&query); err != nil {
		return writeError(c, toValidationError(err))
	}

	result, err := s.searcher.Search(c.Request().Context(), query)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:       "ok",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		CacheEntries: s.cache.Len(),
	})
}

func (s *Server) metricsEndpoint(c echo.Context) error {
	promhttp.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}

func toValidationError(err error) *models.ValidationError {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		field := fieldErrors[0]
		if field.Tag() == "required" {
			return &models.ValidationError{Field: field.Field(), Message: field.Field() + " is required"}
		}
		return &models.ValidationError{Field: field.Field(), Message: field.Field() + " is invalid"}
	}
	return &models.ValidationError{Message: err.Error()}
}

func writeError(c echo.Context, err error) error {

	var validationErr *models.ValidationError
	var configErr *models.ConfigurationError
	var upstreamErr *models.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: validationErr.Message})

	case errors.As(err, &configErr):
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeConfig).Error(configErr.Error())
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: configErr.Error()})

	case errors.As(err, &upstreamErr):
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:   upstreamErr.Message,
			Details: upstreamErr.Details,
		})

	default:
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("unexpected error serving %s: %v", c.Path(), err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
