package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	provider := NewHMACProvider("test-secret", "")
	valid, _ := provider.Issue(42, time.Hour)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedUser int
	}{
		{name: "Valid bearer token", header: "Bearer " + valid, expectedCode: http.StatusOK, expectedUser: 42},
		{name: "Missing header", header: "", expectedCode: http.StatusUnauthorized},
		{name: "Wrong scheme", header: "Basic " + valid, expectedCode: http.StatusUnauthorized},
		{name: "Garbage token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUser int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = UserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			r := httptest.NewRequest(http.MethodGet, "/api/wallet", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			Middleware(provider)(next).ServeHTTP(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedUser, gotUser)
		})
	}
}
