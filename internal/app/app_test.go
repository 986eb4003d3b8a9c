package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ApplicationSuite struct {
	suite.Suite
	app *Application
}

func TestApplication(t *testing.T) {
	suite.Run(t, &ApplicationSuite{})
}

func (s *ApplicationSuite) SetupTest() {
	s.app = New()
}

func (s *ApplicationSuite) TestWait() {
	ctx, cancel := context.WithCancel(context.Background())

	s.app.errCh = make(chan error)
	go func() {
		s.app.errCh <- fmt.Errorf("mock error")
	}()

	err := s.app.Wait(ctx, cancel)

	s.Require().Error(err)
	s.Contains(err.Error(), "mock error")
}

func (s *ApplicationSuite) TestWaitWithoutErrors() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.NoError(s.app.Wait(ctx, cancel))
}

func (s *ApplicationSuite) TestHealth() {
	tests := []struct {
		name     string
		checks   []check
		wantCode int
		wantBody string
	}{
		{
			name: "All dependencies up",
			checks: []check{
				{name: "postgres", probe: func(context.Context) error { return nil }},
				{name: "redis", probe: func(context.Context) error { return nil }},
			},
			wantCode: http.StatusOK,
		},
		{
			name: "Redis down",
			checks: []check{
				{name: "postgres", probe: func(context.Context) error { return nil }},
				{name: "redis", probe: func(context.Context) error { return errors.New("connection refused") }},
			},
			wantCode: http.StatusServiceUnavailable,
			wantBody: "redis unavailable",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.app.checks = tt.checks
			w := httptest.NewRecorder()
			s.app.health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			s.Equal(tt.wantCode, w.Code)
			s.Contains(w.Body.String(), tt.wantBody)
		})
	}
}
