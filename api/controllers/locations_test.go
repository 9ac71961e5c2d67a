package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/ecotech-backend/internal/locations"
)

type stubLocationService struct {
	locations.Service
	lat, lng float64
}

func (s *stubLocationService) FindNearest(_ context.Context, lat, lng float64) (*locations.NearestLocation, error) {
	s.lat, s.lng = lat, lng
	return &locations.NearestLocation{ID: "loc-1", DistanceMeters: 12}, nil
}

func TestLocationNearestParsesQuery(t *testing.T) {
	svc := &stubLocationService{}
	rec := httptest.NewRecorder()
	LocationNearest(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locais/mais-proximo?lat=-23.5&lng=-46.6", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.lat != -23.5 || svc.lng != -46.6 {
		t.Fatalf("unexpected coordinates %v %v", svc.lat, svc.lng)
	}
}

func TestLocationNearestValidatesQuery(t *testing.T) {
	cases := []string{
		"/locais/mais-proximo",
		"/locais/mais-proximo?lat=10",
		"/locais/mais-proximo?lat=95&lng=0",
		"/locais/mais-proximo?lat=x&lng=0",
	}
	for _, target := range cases {
		rec := httptest.NewRecorder()
		LocationNearest(&stubLocationService{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", target, rec.Code)
		}
	}
}
