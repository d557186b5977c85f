package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"planetgen/internal/auth"
	"planetgen/internal/planet"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := planet.NewService(nil, nil, planet.ServiceConfig{DefaultSize: 16, Workers: 2, MaxBatch: 4, MaxSize: 64}, logger)
	srv := httptest.NewServer(NewRoutes(svc, nil, nil, testSecret).Setup())
	defer srv.Close()

	admin, _ := auth.GenerateJWT("ops", auth.RoleAdmin, testSecret, time.Hour)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		token      string
		wantStatus int
	}{
		{"health", http.MethodGet, "/api/server/health", "", "", http.StatusOK},
		{"profile", http.MethodGet, "/api/planets/42", "", "", http.StatusOK},
		{"texture", http.MethodGet, "/api/planets/42/texture", "", "", http.StatusOK},
		{"raw texture", http.MethodGet, "/api/planets/42/texture.raw", "", "", http.StatusOK},
		{"batch", http.MethodPost, "/api/planets/batch", `{"seeds":[1,2]}`, "", http.StatusOK},
		{"catalog read without store", http.MethodGet, "/api/catalog", "", "", http.StatusServiceUnavailable},
		{"catalog write without token", http.MethodPost, "/api/catalog", `{"seed":1}`, "", http.StatusUnauthorized},
		{"catalog write with admin token", http.MethodPost, "/api/catalog", `{"seed":1}`, admin, http.StatusServiceUnavailable},
		{"catalog delete without token", http.MethodDelete, "/api/catalog/1", "", "", http.StatusUnauthorized},
		{"catalog wrong method", http.MethodPut, "/api/catalog", "", "", http.StatusMethodNotAllowed},
		{"unknown route", http.MethodGet, "/api/stars", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req, err := http.NewRequest(tt.method, srv.URL+tt.path, body)
			if err != nil {
				t.Fatal(err)
			}
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
