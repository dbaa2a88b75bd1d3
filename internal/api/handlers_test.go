package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/faytuks/engine/internal/draft"
)

func testServer(t *testing.T) (*httptest.Server, *draft.Store) {
	t.Helper()
	store, err := draft.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewRouter(NewHandler(store, "test")))
	t.Cleanup(srv.Close)
	return srv, store
}

func mustCreate(t *testing.T, store *draft.Store, f draft.Fields) *draft.Draft {
	t.Helper()
	d, err := store.Create(f)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatal(err)
	}
	return v
}

func TestHealth(t *testing.T) {
	srv, store := testServer(t)
	mustCreate(t, store, draft.Fields{English: "pending item", Pattern: "general"})

	resp, err := http.Get(srv.URL + "/api/v1/health")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	health := decode[HealthResponse](t, resp)
	if health.Status != "healthy" || health.Pending != 1 {
		t.Errorf("health = %+v", health)
	}
}

func TestListDraftsByState(t *testing.T) {
	srv, store := testServer(t)
	mustCreate(t, store, draft.Fields{English: "pending item", Pattern: "general"})
	mustCreate(t, store, draft.Fields{English: "approved item", Pattern: "breaking", Approved: true})

	resp, err := http.Get(srv.URL + "/api/v1/drafts?state=approved")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[struct {
		Drafts []draft.Draft `json:"drafts"`
		Count  int           `json:"count"`
	}](t, resp)
	if body.Count != 1 || body.Drafts[0].English != "approved item" {
		t.Errorf("approved list = %+v", body)
	}

	// Default state is pending.
	resp, err = http.Get(srv.URL + "/api/v1/drafts")
	if err != nil {
		t.Fatal(err)
	}
	body = decode[struct {
		Drafts []draft.Draft `json:"drafts"`
		Count  int           `json:"count"`
	}](t, resp)
	if body.Count != 1 || body.Drafts[0].English != "pending item" {
		t.Errorf("pending list = %+v", body)
	}
}

func TestListDraftsUnknownState(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/drafts?state=bogus")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("content type = %q", ct)
	}
}

func TestGetDraftByPrefix(t *testing.T) {
	srv, store := testServer(t)
	d := mustCreate(t, store, draft.Fields{English: "find me", Pattern: "general"})

	resp, err := http.Get(srv.URL + "/api/v1/drafts/" + d.ID[:8])
	if err != nil {
		t.Fatal(err)
	}
	got := decode[draft.Draft](t, resp)
	if got.ID != d.ID {
		t.Errorf("got id %q, want %q", got.ID, d.ID)
	}
}

func TestGetDraftNotFound(t *testing.T) {
	srv, _ := testServer(t)
	resp, err := http.Get(srv.URL + "/api/v1/drafts/nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestApproveFlow(t *testing.T) {
	srv, store := testServer(t)
	d := mustCreate(t, store, draft.Fields{English: "approve me", Pattern: "general"})

	resp, err := http.Post(srv.URL+"/api/v1/drafts/"+d.ID+"/approve", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(store.ListApproved()) != 1 {
		t.Error("draft not moved to approved")
	}

	// Approving again is a 404: the draft is no longer pending.
	resp, err = http.Post(srv.URL+"/api/v1/drafts/"+d.ID+"/approve", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second approve status = %d, want 404", resp.StatusCode)
	}
}

func TestRejectDeletes(t *testing.T) {
	srv, store := testServer(t)
	d := mustCreate(t, store, draft.Fields{English: "reject me", Pattern: "general"})

	resp, err := http.Post(srv.URL+"/api/v1/drafts/"+d.ID+"/reject", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(store.ListPending()) != 0 {
		t.Error("draft still pending after reject")
	}
}

func TestAttachMedia(t *testing.T) {
	srv, store := testServer(t)
	d := mustCreate(t, store, draft.Fields{English: "media here", Pattern: "general"})

	resp, err := http.Post(srv.URL+"/api/v1/drafts/"+d.ID+"/media",
		"application/json", strings.NewReader(`{"media":"media/cinema-rex.jpg"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	got, _ := store.GetExact(d.ID)
	if len(got.Media) != 1 || got.Media[0] != "media/cinema-rex.jpg" {
		t.Errorf("media = %v", got.Media)
	}

	// Empty payloads are rejected before any store mutation.
	resp, err = http.Post(srv.URL+"/api/v1/drafts/"+d.ID+"/media",
		"application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty media status = %d, want 400", resp.StatusCode)
	}
}

func TestStats(t *testing.T) {
	srv, store := testServer(t)
	d := mustCreate(t, store, draft.Fields{English: "posted item", Pattern: "fire_parallel", Approved: true})
	store.MarkPosted(d.ID, "12345")

	resp, err := http.Get(srv.URL + "/api/v1/stats")
	if err != nil {
		t.Fatal(err)
	}
	body := decode[struct {
		Counts          draft.Counts   `json:"counts"`
		PostedByPattern map[string]int `json:"posted_by_pattern"`
	}](t, resp)
	if body.Counts.Posted != 1 {
		t.Errorf("posted count = %d, want 1", body.Counts.Posted)
	}
	if body.PostedByPattern["fire_parallel"] != 1 {
		t.Errorf("posted_by_pattern = %v", body.PostedByPattern)
	}
}
