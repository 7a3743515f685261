package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func testContext(t *testing.T, target string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestGetUserID(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    uint64
		wantErr bool
	}{
		{"uint64", uint64(5), 5, false},
		{"int", 6, 6, false},
		{"int64", int64(7), 7, false},
		{"float64 from jwt claims", float64(8), 8, false},
		{"numeric string", "9", 9, false},
		{"garbage string", "abc", 0, true},
		{"missing", nil, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext(t, "/")
			if tt.value != nil {
				c.Set("user_id", tt.value)
			}
			got, err := getUserID(c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("id = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestQueryID(t *testing.T) {
	tests := []struct {
		name   string
		target string
		param  string
		want   uint64
		wantOK bool
	}{
		{"present", "/?group_id=12", "group_id", 12, true},
		{"absent", "/", "group_id", 0, false},
		{"zero rejected", "/?group_id=0", "group_id", 0, false},
		{"non-numeric", "/?group_id=abc", "group_id", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := queryID(testContext(t, tt.target), tt.param)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("queryID = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"08:00", "08:00:00", true},
		{"08:00:00", "08:00:00", true},
		{" 14:30 ", "14:30:00", true},
		{"23:59:59", "23:59:59", true},
		{"8:00", "08:00:00", true},
		{"25:00", "", false},
		{"08:60", "", false},
		{"", "", false},
		{"morning", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizeTime(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("normalizeTime(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestWeekDays(t *testing.T) {
	for _, d := range []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"} {
		if !weekDays[d] {
			t.Errorf("%s should be a valid day", d)
		}
	}
	for _, d := range []string{"Monday", "lunes", ""} {
		if weekDays[d] {
			t.Errorf("%s should not be a valid day", d)
		}
	}
}

func TestValidRoomKind(t *testing.T) {
	for _, k := range []string{"CLASSROOM", "LAB", "AUDITORIUM"} {
		if !validRoomKind(k) {
			t.Errorf("%s should be valid", k)
		}
	}
	for _, k := range []string{"classroom", "OFFICE", ""} {
		if validRoomKind(k) {
			t.Errorf("%s should be invalid", k)
		}
	}
}
