package server

import (
	"context"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/job-keywords/internal/config"
	"github.com/maxaizer/job-keywords/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"net/http"
	"reflect"
	"strings"
)

type jobSearcher interface {
	Search(ctx context.Context, query models.SearchQuery) (*models.SearchResult, error)
}

type cacheSizer interface {
	Len() int
}

type Server struct {
	echo     *echo.Echo
	config   config.ServerConfig
	searcher jobSearcher
	cache    cacheSizer
}

func New(cfg config.ServerConfig, searcher jobSearcher, cache cacheSizer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()

	s := &Server{
		echo:     e,
		config:   cfg,
		searcher: searcher,
		cache:    cache,
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.Any("/api/jobs", s.searchJobs)
	s.echo.Any("/api/search-jobs", s.searchJobs)
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)
}

// Start blocks until the server stops. A graceful shutdown is not reported as an error.
func (s *Server) Start() error {
	server := &http.Server{
		Addr:         s.config.Address(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	log.Infof("Starting HTTP server on %s", server.Addr)
	if err := s.echo.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

type requestValidator struct {
	validator *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	// report json names so errors match what the caller sent
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &requestValidator{validator: v}
}

func (v *requestValidator) Validate(i any) error {
	return v.validator.Struct(i)
}
