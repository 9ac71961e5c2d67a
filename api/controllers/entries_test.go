package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ecotech-backend/internal/cascade"
	"github.com/angelmondragon/ecotech-backend/internal/entries"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/pagination"
)

type stubEntryService struct {
	entries.Service
	created entries.CreateEntryInput
	patched entries.UpdateEntryInput
	paged   *pagination.Params
	err     error
}

func (s *stubEntryService) List(context.Context) ([]entries.EntryDTO, error) {
	return []entries.EntryDTO{{ID: "e1"}}, nil
}

func (s *stubEntryService) ListPage(_ context.Context, params pagination.Params) (*entries.EntryPage, error) {
	s.paged = &params
	return &entries.EntryPage{Items: []entries.EntryDTO{{ID: "e1"}}, NextCursor: "next"}, nil
}

func (s *stubEntryService) Create(_ context.Context, input entries.CreateEntryInput) (*entries.EntryDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	uid := input.UID
	return &entries.EntryDTO{ID: "e1", UID: &uid, Category: input.Category, LocationID: input.LocationID, Show: true}, nil
}

func (s *stubEntryService) Update(_ context.Context, id string, patch entries.UpdateEntryInput) (*entries.EntryDTO, error) {
	s.patched = patch
	return &entries.EntryDTO{ID: id, LocationID: "loc-1"}, nil
}

type stubCascade struct {
	cascade.Service
	hidden string
}

func (s *stubCascade) HideEntry(_ context.Context, id string) (*models.RecyclingEntry, error) {
	s.hidden = id
	return &models.RecyclingEntry{ID: id, Visibility: enums.EntryVisibilityHidden}, nil
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rc := chi.NewRouteContext()
	rc.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
}

func TestEntryCreateMapsBody(t *testing.T) {
	svc := &stubEntryService{}
	body := `{"uid":"u1","categoria":"celular","quantidade":2,"localDescarte":"loc-1","pontos":7.5}`
	rec := httptest.NewRecorder()
	EntryCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/eletronicos", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	want := entries.CreateEntryInput{UID: "u1", Category: "celular", Quantity: 2, LocationID: "loc-1", Points: 7.5}
	if svc.created != want {
		t.Fatalf("unexpected input %+v", svc.created)
	}
}

func TestEntryCreateRejectsUnknownFields(t *testing.T) {
	svc := &stubEntryService{}
	rec := httptest.NewRecorder()
	EntryCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/eletronicos", strings.NewReader(`{"id":"forged"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestEntryCreateSurfacesReferentialViolation(t *testing.T) {
	svc := &stubEntryService{err: pkgerrors.MissingReference("localDescarte", "unknown_location")}
	rec := httptest.NewRecorder()
	EntryCreate(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/eletronicos", strings.NewReader(`{"uid":"u1"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unknown_location") {
		t.Fatalf("expected reason in body, got %s", rec.Body.String())
	}
}

func TestEntryUpdateForwardsLocationForGuard(t *testing.T) {
	svc := &stubEntryService{}
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/eletronicos/e1", strings.NewReader(`{"localDescarte":"loc-9","show":false}`)), "id", "e1")
	rec := httptest.NewRecorder()
	EntryUpdate(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.patched.LocationID == nil || *svc.patched.LocationID != "loc-9" {
		t.Fatalf("expected location forwarded to the service")
	}
	if svc.patched.Show == nil || *svc.patched.Show {
		t.Fatalf("expected show=false forwarded")
	}
}

func TestEntryHideReturnsDTO(t *testing.T) {
	svc := &stubCascade{}
	req := withURLParam(httptest.NewRequest(http.MethodPatch, "/eletronicos/e1/ocultar", nil), "id", "e1")
	rec := httptest.NewRecorder()
	EntryHide(svc, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || svc.hidden != "e1" {
		t.Fatalf("expected hide of e1, got %d %q", rec.Code, svc.hidden)
	}
	var body struct {
		Data entries.EntryDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Show {
		t.Fatalf("expected show=false")
	}
}

func TestEntryListPagesOnlyWhenAsked(t *testing.T) {
	svc := &stubEntryService{}
	rec := httptest.NewRecorder()
	EntryList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eletronicos", nil))
	if rec.Code != http.StatusOK || svc.paged != nil {
		t.Fatalf("expected unpaged list, got %d paged=%v", rec.Code, svc.paged)
	}

	rec = httptest.NewRecorder()
	EntryList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eletronicos?limit=10&cursor=abc", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if svc.paged == nil || svc.paged.Limit != 10 || svc.paged.Cursor != "abc" {
		t.Fatalf("unexpected params %+v", svc.paged)
	}
	if !strings.Contains(rec.Body.String(), `"nextCursor":"next"`) {
		t.Fatalf("expected next cursor in body, got %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	EntryList(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/eletronicos?limit=500", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized limit, got %d", rec.Code)
	}
}
