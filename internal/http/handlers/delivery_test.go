package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newDeliveryRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDeliveryHandler()
	r.GET("/api/delivery/zones", h.Zones)
	r.GET("/api/delivery/match", h.Match)
	return r
}

func TestDeliveryZones(t *testing.T) {
	r := newDeliveryRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/delivery/zones", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Items []struct {
			Name    string `json:"name"`
			FeeFCFA int    `json:"fee_fcfa"`
			Fee     string `json:"fee"`
		} `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(body.Items) == 0 {
		t.Fatal("no zones returned")
	}
	if body.Items[0].Name != "Centre-ville" {
		t.Errorf("first zone = %q, want Centre-ville", body.Items[0].Name)
	}
	if body.Items[0].Fee == "" {
		t.Error("formatted fee missing")
	}
}

func TestDeliveryMatch(t *testing.T) {
	r := newDeliveryRouter()

	tests := []struct {
		name       string
		url        string
		wantStatus int
		wantMatch  bool
		wantZone   string
	}{
		{
			name:       "inside coverage",
			url:        "/api/delivery/match?lat=11.3176&lng=-5.6665",
			wantStatus: http.StatusOK,
			wantMatch:  true,
			wantZone:   "Centre-ville",
		},
		{
			name:       "far outside coverage",
			url:        "/api/delivery/match?lat=12.65&lng=-8.0",
			wantStatus: http.StatusOK,
			wantMatch:  false,
		},
		{
			name:       "missing coordinates",
			url:        "/api/delivery/match",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "garbage coordinates",
			url:        "/api/delivery/match?lat=abc&lng=def",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if tc.wantStatus != http.StatusOK {
				return
			}

			var body struct {
				Matched bool `json:"matched"`
				Zone    *struct {
					Name string `json:"name"`
				} `json:"zone"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if body.Matched != tc.wantMatch {
				t.Errorf("matched = %v, want %v", body.Matched, tc.wantMatch)
			}
			if tc.wantMatch && (body.Zone == nil || body.Zone.Name != tc.wantZone) {
				t.Errorf("zone = %+v, want %s", body.Zone, tc.wantZone)
			}
		})
	}
}
