package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		allowed  []string
		role     interface{}
		wantCode int
	}{
		{"admin allowed", []string{"ADMIN", "COORDINATOR"}, "ADMIN", http.StatusOK},
		{"coordinator allowed", []string{"ADMIN", "COORDINATOR"}, "COORDINATOR", http.StatusOK},
		{"student denied", []string{"ADMIN", "COORDINATOR"}, "STUDENT", http.StatusForbidden},
		{"missing role denied", []string{"ADMIN"}, nil, http.StatusForbidden},
		{"non-string role denied", []string{"ADMIN"}, 7, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}

			h := RequireRole(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}
