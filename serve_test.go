package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"bc-combo-solver/internal/catalogio"
	"bc-combo-solver/internal/combo"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	combos, err := catalogio.ReadTSV(strings.NewReader(
		"Name\tEffect\tUnit1\tUnit2\n" +
			"C1\tAttack (M)\tu1\tu2\n" +
			"C2\tAttack (S)\tu2\tu3\n" +
			"C3\tSpeed (L)\tu4\n"))
	if err != nil {
		t.Fatalf("ReadTSV: %v", err)
	}
	cats, err := catalogio.ReadTSV(strings.NewReader("First\tEvolved\nu1\tu1 Evolved\n"))
	if err != nil {
		t.Fatalf("ReadTSV: %v", err)
	}
	srv := newSearchServer(datasetFromTables(combos, cats), combo.DefaultOptions(), time.Second)
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeSearch(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/search", "application/json",
		strings.NewReader(`{"effectType":"Attack","strength":3,"maxUnits":3}`))
	if err != nil {
		t.Fatalf("POST /search: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}

	var res SearchResult
	if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 1 || res.Solutions[0].TotalStrength != 3 || res.Solutions[0].UnitCount != 3 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestServeErrors(t *testing.T) {
	ts := testServer(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"bad json", http.MethodPost, "/search", `{"strength":`, http.StatusBadRequest},
		{"bad budget", http.MethodPost, "/search", `{"strength":1,"maxUnits":0}`, http.StatusBadRequest},
		{"unknown unit", http.MethodGet, "/forms/nobody", "", http.StatusNotFound},
		{"known unit", http.MethodGet, "/forms/u1", "", http.StatusOK},
		{"effects", http.MethodGet, "/effects", "", http.StatusOK},
		{"health", http.MethodGet, "/healthz", "", http.StatusOK},
		{"wrong method", http.MethodGet, "/search", "", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, strings.NewReader(tc.body))
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("%s %s: %v", tc.method, tc.path, err)
			}
			resp.Body.Close()
			if resp.StatusCode != tc.status {
				t.Fatalf("status %d, want %d", resp.StatusCode, tc.status)
			}
		})
	}
}

func TestServeEffectsAndSwap(t *testing.T) {
	combos, _ := catalogio.ReadTSV(strings.NewReader("Name\tEffect\tUnit1\nA\tAttack (S)\tx\n"))
	srv := newSearchServer(datasetFromTables(combos, nil), combo.DefaultOptions(), 0)
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	effects := func() []string {
		resp, err := http.Get(ts.URL + "/effects")
		if err != nil {
			t.Fatalf("GET /effects: %v", err)
		}
		defer resp.Body.Close()
		var out effectsResponse
		if err := sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return out.EffectTypes
	}

	if got := effects(); len(got) != 1 || got[0] != "Attack" {
		t.Fatalf("effects = %v", got)
	}

	next, _ := catalogio.ReadTSV(strings.NewReader("Name\tEffect\tUnit1\nB\tSpeed (M)\ty\nC\tHealth (L)\tz\n"))
	srv.Swap(datasetFromTables(next, nil))
	if got := effects(); len(got) != 2 || got[0] != "Health" || got[1] != "Speed" {
		t.Fatalf("effects after swap = %v", got)
	}
}

func TestServeSearchClientGone(t *testing.T) {
	combos, _ := catalogio.ReadTSV(strings.NewReader("Name\tEffect\tUnit1\nA\tAttack (S)\tx\n"))
	srv := newSearchServer(datasetFromTables(combos, nil), combo.DefaultOptions(), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"strength":1,"maxUnits":1}`)).WithContext(ctx)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, req)

	if rec.Code != 499 {
		t.Fatalf("status %d, want 499", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "context canceled") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}
