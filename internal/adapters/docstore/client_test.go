package docstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotelnow/internal/adapters/docstore"
	"hotelnow/internal/domain"
)

func TestClient_ListHotelsByCity_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1, 2:
			// two transient failures
			w.WriteHeader(503)
		default:
			if got := r.URL.Query().Get("city"); got != "pune" {
				t.Errorf("city query: %q", got)
			}
			if got := r.Header.Get("X-API-Key"); got != "test-key" {
				t.Errorf("api key header: %q", got)
			}
			w.WriteHeader(200)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"documents": []map[string]any{{"id": "h1", "name": "Sunrise", "city": "Pune", "price": "1200"}},
			})
		}
	}))
	defer ts.Close()

	cl, err := docstore.New(ts.URL, "test-key", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := cl.ListHotelsByCity(ctx, "pune")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != "h1" || got[0].Price.Float() != 1200 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if atomic.LoadInt32(&hits) < 3 {
		t.Fatalf("expected at least 3 calls due to retries, got %d", hits)
	}
}

func TestClient_GetHotel_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	cl, err := docstore.New(ts.URL, "test-key", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err = cl.GetHotel(ctx, "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestClient_CreateHotel_ReturnsAssignedID(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: %s", r.Method)
		}
		var doc map[string]any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			t.Errorf("body: %v", err)
		}
		if doc["name"] != "Sunrise" {
			t.Errorf("doc: %+v", doc)
		}
		w.WriteHeader(201)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "assigned-1"})
	}))
	defer ts.Close()

	cl, err := docstore.New(ts.URL, "", 100)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	id, err := cl.CreateHotel(context.Background(), domain.Hotel{Name: "Sunrise", City: "Pune"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if id != "assigned-1" {
		t.Fatalf("id: %q", id)
	}
}

func TestClient_Delete_NoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method: %s", r.Method)
		}
		w.WriteHeader(204)
	}))
	defer ts.Close()

	cl, _ := docstore.New(ts.URL, "", 100)
	if err := cl.DeleteHotel(context.Background(), "h1"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestClient_Unauthorized_NoRetry(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(401)
	}))
	defer ts.Close()

	cl, _ := docstore.New(ts.URL, "bad-key", 100)
	_, err := cl.ListCities(context.Background())
	if !errors.Is(err, docstore.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("auth failures must not retry, got %d calls", hits)
	}
}

func TestClient_RequiresBaseURL(t *testing.T) {
	if _, err := docstore.New("", "", 10); err == nil {
		t.Fatal("empty base URL must be rejected")
	}
}
