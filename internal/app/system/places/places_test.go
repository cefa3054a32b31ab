package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(Config{APIKey: "k", BaseURL: srv.URL, PageDelay: time.Millisecond}, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_RequiresKey(t *testing.T) {
	if _, err := New(Config{}, nil); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestNew_Defaults(t *testing.T) {
	tests := []struct {
		name  string
		delay time.Duration
		want  time.Duration
	}{
		{"unset", 0, DefaultPageDelay},
		{"negative", -time.Second, DefaultPageDelay},
		{"explicit", 500 * time.Millisecond, 500 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(Config{APIKey: "k", PageDelay: tt.delay}, nil)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if c.cfg.PageDelay != tt.want {
				t.Errorf("PageDelay = %v, want %v", c.cfg.PageDelay, tt.want)
			}
			if c.cfg.BaseURL != DefaultBaseURL || c.cfg.Region != "mx" {
				t.Errorf("cfg = %+v", c.cfg)
			}
		})
	}
}

func TestSearchUniversities_Paginates(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		q := r.URL.Query()
		if q.Get("key") != "k" {
			t.Errorf("missing key on call %d", calls)
		}
		switch q.Get("pagetoken") {
		case "":
			if q.Get("type") != "university" || q.Get("region") != "mx" {
				t.Errorf("first page params = %v", q)
			}
			fmt.Fprint(w, `{"status":"OK","next_page_token":"p2","results":[
				{"name":"BUAP","geometry":{"location":{"lat":19.0,"lng":-98.2}}},
				{"name":"","geometry":{"location":{"lat":1,"lng":1}}},
				{"name":"Sin ubicación","geometry":{}}
			]}`)
		case "p2":
			fmt.Fprint(w, `{"status":"OK","results":[
				{"name":"UPAEP","formatted_address":"Puebla","geometry":{"location":{"lat":19.05,"lng":-98.21}}}
			]}`)
		default:
			t.Errorf("unexpected token %q", q.Get("pagetoken"))
		}
	})

	got, err := c.SearchUniversities(context.Background(), "universidad en Puebla", 10)
	if err != nil {
		t.Fatalf("SearchUniversities: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(got) != 2 || got[0].Name != "BUAP" || got[1].Address != "Puebla" {
		t.Errorf("got %+v", got)
	}
}

func TestSearchUniversities_StopsAtMax(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","next_page_token":"more","results":[
			{"name":"A","geometry":{"location":{"lat":1,"lng":1}}},
			{"name":"B","geometry":{"location":{"lat":1,"lng":1}}}
		]}`)
	})
	got, err := c.SearchUniversities(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("SearchUniversities: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestSearchUniversities_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"REQUEST_DENIED","error_message":"bad key"}`)
	})
	_, err := c.SearchUniversities(context.Background(), "q", 5)
	var se *StatusError
	if !errors.As(err, &se) || se.Status != "REQUEST_DENIED" {
		t.Errorf("err = %v, want StatusError REQUEST_DENIED", err)
	}
}

func TestSearchUniversities_ZeroResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ZERO_RESULTS","results":[]}`)
	})
	got, err := c.SearchUniversities(context.Background(), "q", 5)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v", got, err)
	}
}
