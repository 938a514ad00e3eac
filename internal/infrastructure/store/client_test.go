package store

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

func newTestStore(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Logger:     logging.NewNop(),
	})
}

func TestClientSendsAuthHeaders(t *testing.T) {
	t.Parallel()

	client := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != "test-key" {
			t.Errorf("missing apikey header")
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}
		_, _ = w.Write([]byte(`[{"count": 3}]`))
	}))

	count, err := client.Count(context.Background(), "teams")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("unexpected count: %d", count)
	}
}

func TestUpdateByFilterReturnsMatchedRows(t *testing.T) {
	t.Parallel()

	client := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/rest/v1/teams" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("id"); got != "eq.3" {
			t.Errorf("unexpected filter: %q", got)
		}
		if got := r.Header.Get("Prefer"); got != "return=representation" {
			t.Errorf("unexpected Prefer header: %q", got)
		}
		_, _ = w.Write([]byte(`[{"id": 3}]`))
	}))

	matched, err := client.UpdateByFilter(context.Background(), "teams", map[string]any{"name": "Arsenal"}, Eq("id", int64(3)))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected 1 matched row, got %d", matched)
	}
}

func TestUpdateByFilterZeroMatches(t *testing.T) {
	t.Parallel()

	client := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))

	matched, err := client.UpdateByFilter(context.Background(), "teams", map[string]any{"name": "Arsenal"}, Eq("id", int64(99)))
	if err != nil {
		t.Fatalf("zero matched rows is not an error: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected 0 matched rows, got %d", matched)
	}
}

func TestDeleteByFilterRefusesUnfiltered(t *testing.T) {
	t.Parallel()

	client := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request may reach the store")
	}))

	if err := client.DeleteByFilter(context.Background(), "user_gw_picks"); err == nil {
		t.Fatalf("expected refusal for an unfiltered delete")
	}
}

func TestSchemaMismatchClassification(t *testing.T) {
	t.Parallel()

	var requests atomic.Int32
	client := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "PGRST204", "message": "Could not find the 'strength' column of 'teams' in the schema cache"}`))
	}))

	ctx := context.Background()
	err := client.Insert(ctx, "teams", []any{map[string]any{"strength": 5}})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}

	// Repeats with the same signature still fail, only the log is suppressed.
	err = client.Insert(ctx, "teams", []any{map[string]any{"strength": 4}})
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch on repeat, got %v", err)
	}
	if requests.Load() != 2 {
		t.Fatalf("both writes must reach the store, got %d", requests.Load())
	}
}

func TestSchemaMismatchLoggedOncePerSignature(t *testing.T) {
	t.Parallel()

	logger := logging.NewNop()
	dedup := logging.NewDedup(logger)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "PGRST204", "message": "Could not find the 'bps' column of 'player_gw_stats' in the schema cache"}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(ClientConfig{
		HTTPClient: srv.Client(),
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		Logger:     logger,
		Dedup:      dedup,
	})

	ctx := context.Background()
	_ = client.Insert(ctx, "player_gw_stats", []any{map[string]any{"bps": 10}})
	_ = client.Insert(ctx, "player_gw_stats", []any{map[string]any{"bps": 12}})

	signature := "player_gw_stats:PGRST204:Could not find the 'bps' column of 'player_gw_stats' in the schema cache"
	if !dedup.Seen(signature) {
		t.Fatalf("signature not registered in the dedup sink")
	}
}

func TestMissingColumnHeuristics(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body storeErrorBody
		want bool
	}{
		{"pgrst204 code", storeErrorBody{Code: "PGRST204", Message: "whatever"}, true},
		{"message match", storeErrorBody{Code: "42703", Message: "Could not find the 'form' column of 'teams'"}, true},
		{"unrelated error", storeErrorBody{Code: "PGRST301", Message: "JWT expired"}, false},
		{"column word alone", storeErrorBody{Message: "column reference is ambiguous"}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := isMissingColumn(tc.body); got != tc.want {
				t.Fatalf("isMissingColumn(%+v) = %v, want %v", tc.body, got, tc.want)
			}
		})
	}
}

func TestEncodeQuery(t *testing.T) {
	t.Parallel()

	got := encodeQuery("id,name", 0, []Condition{Eq("finished", true), Eq("id", int64(7))})
	want := "finished=eq.true&id=eq.7&select=id%2Cname"
	if got != want {
		t.Fatalf("encodeQuery = %q, want %q", got, want)
	}
}
