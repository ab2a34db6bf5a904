package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchSnapshotShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrapped", `{"updated_at":"x","jobs":[{"title":"a"},{"title":"b"}]}`, 2},
		{"bare array", `[{"title":"a"}]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewClient(Config{SnapshotURL: server.URL})
			items, err := c.FetchSnapshot(context.Background())
			if err != nil {
				t.Fatalf("FetchSnapshot failed: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestFetchSnapshotErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad-json" {
			w.Write([]byte(`{"jobs": [`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(Config{SnapshotURL: server.URL + "/missing"})
	if _, err := c.FetchSnapshot(context.Background()); !errors.Is(err, ErrStatus) {
		t.Errorf("expected ErrStatus, got %v", err)
	}

	c = NewClient(Config{SnapshotURL: server.URL + "/bad-json"})
	if _, err := c.FetchSnapshot(context.Background()); err == nil {
		t.Error("expected parse error")
	}
}

func TestFetchPageFallsBackAcrossBases(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer down.Close()

	var gotOffset, gotLimit string
	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotOffset = r.URL.Query().Get("offset")
		gotLimit = r.URL.Query().Get("limit")
		w.Write([]byte(`{"jobs":[{"title":"x","url":"u"}],"next_offset":null,"loading":true}`))
	}))
	defer up.Close()

	c := NewClient(Config{APIBases: []string{down.URL, up.URL}, PageLimit: 25})
	page, err := c.FetchPage(context.Background(), 50)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if gotOffset != "50" || gotLimit != "25" {
		t.Errorf("query offset=%s limit=%s", gotOffset, gotLimit)
	}
	if len(page.Jobs) != 1 || page.NextOffset != nil || !page.Loading {
		t.Errorf("unexpected page: %+v", page)
	}
}

func TestFetchPageNoBases(t *testing.T) {
	c := NewClient(Config{})
	if _, err := c.FetchPage(context.Background(), 0); !errors.Is(err, ErrNoBases) {
		t.Errorf("expected ErrNoBases, got %v", err)
	}
}

func TestFetchDetailEncodesURL(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("url")
		w.Write([]byte(`{"postName":"Clerk","ageLimit":["18-28"],"salary":"Rs. 25,000"}`))
	}))
	defer server.Close()

	c := NewClient(Config{})
	jobURL := "https://www.freejobalert.com/x?a=1&b=2"
	d, err := c.FetchDetail(context.Background(), server.URL, jobURL)
	if err != nil {
		t.Fatalf("FetchDetail failed: %v", err)
	}
	if got != jobURL {
		t.Errorf("url param %q", got)
	}
	if d.PostName != "Clerk" || d.AgeLimit.String() != "18-28" || d.Salary.String() != "Rs. 25,000" {
		t.Errorf("unexpected detail: %+v", d)
	}
}
