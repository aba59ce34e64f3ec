package tvdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Options{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		RequestsPerSecond: 1000,
		Logger:            zerolog.Nop(),
	})
	return server, client
}

func TestLoginStoresToken(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"success","data":{"token":"abc123"}}`)
	})

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if client.bearer() != "abc123" {
		t.Errorf("token = %q", client.bearer())
	}
}

func TestGetSendsBearer(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			fmt.Fprint(w, `{"status":"success","data":{"token":"abc123"}}`)
		case "/series/100/extended":
			if got := r.Header.Get("Authorization"); got != "Bearer abc123" {
				t.Errorf("Authorization = %q", got)
			}
			fmt.Fprint(w, `{"status":"success","data":{"id":100,"name":"Static Drift","averageRuntime":45}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	series, err := client.SeriesExtended(context.Background(), 100)
	if err != nil {
		t.Fatalf("SeriesExtended: %v", err)
	}
	if series.ID != 100 || series.Name != "Static Drift" || series.AverageRuntime != 45 {
		t.Errorf("series = %+v", series.Series)
	}
}

func TestGetReloginsOn401(t *testing.T) {
	logins := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			logins++
			fmt.Fprintf(w, `{"status":"success","data":{"token":"token-%d"}}`, logins)
		case "/series/100/extended":
			if r.Header.Get("Authorization") != "Bearer token-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"status":"success","data":{"id":100}}`)
		}
	})

	if err := client.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	series, err := client.SeriesExtended(context.Background(), 100)
	if err != nil {
		t.Fatalf("SeriesExtended after relogin: %v", err)
	}
	if series.ID != 100 {
		t.Errorf("series.ID = %d", series.ID)
	}
	if logins != 2 {
		t.Errorf("logins = %d, want 2", logins)
	}
}

func TestNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"status":"failure","message":"NotFoundException"}`)
	})

	_, err := client.SeriesExtended(context.Background(), 9)
	if !IsNotFound(err) {
		t.Errorf("err = %v, want IsNotFound", err)
	}
}

func TestSeasonByNumber(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/series/100/extended":
			if r.URL.Query().Get("short") != "true" {
				t.Errorf("short = %q, want true", r.URL.Query().Get("short"))
			}
			fmt.Fprint(w, `{"status":"success","data":{"id":100,"seasons":[
				{"id":1001,"seriesId":100,"number":1,"type":{"id":1,"type":"official"}},
				{"id":1003,"seriesId":100,"number":1,"type":{"id":2,"type":"dvd"}}
			]}}`)
		case "/seasons/1001/extended":
			fmt.Fprint(w, `{"status":"success","data":{"id":1001,"seriesId":100,"number":1,
				"type":{"id":1,"type":"official"},
				"episodes":[{"id":2001,"number":1,"seasonNumber":1}]}}`)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	season, err := client.SeasonByNumber(context.Background(), 100, 1, "official")
	if err != nil {
		t.Fatalf("SeasonByNumber: %v", err)
	}
	if season == nil || season.ID != 1001 || len(season.Episodes) != 1 {
		t.Fatalf("season = %+v", season)
	}

	missing, err := client.SeasonByNumber(context.Background(), 100, 5, "official")
	if err != nil {
		t.Fatalf("SeasonByNumber missing: %v", err)
	}
	if missing != nil {
		t.Errorf("missing season = %+v, want nil", missing)
	}
}

func TestEpisodeByNumber(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/series/100/episodes/official" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("season") != "1" || q.Get("episodeNumber") != "2" {
			t.Errorf("query = %v", q)
		}
		fmt.Fprint(w, `{"status":"success","data":{"series":{"id":100},
			"episodes":[{"id":2002,"name":"Second","number":2,"seasonNumber":1,"runtime":45}]}}`)
	})

	episode, err := client.EpisodeByNumber(context.Background(), 100, 1, 2, "official")
	if err != nil {
		t.Fatalf("EpisodeByNumber: %v", err)
	}
	if episode == nil || episode.ID != 2002 || episode.Name != "Second" {
		t.Fatalf("episode = %+v", episode)
	}
}

func TestEpisodeByNumberEmpty(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"series":{"id":100},"episodes":[]}}`)
	})

	episode, err := client.EpisodeByNumber(context.Background(), 100, 1, 99, "official")
	if err != nil {
		t.Fatalf("EpisodeByNumber: %v", err)
	}
	if episode != nil {
		t.Errorf("episode = %+v, want nil", episode)
	}
}

func TestSearch(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("query") != "static drift" || q.Get("type") != "series" || q.Get("year") != "2019" {
			t.Errorf("query = %v", q)
		}
		fmt.Fprint(w, `{"status":"success","data":[
			{"objectID":"series-100","tvdb_id":"100","type":"series","name":"Static Drift","year":"2019"}
		]}`)
	})

	results, err := client.Search(context.Background(), "static drift", 2019)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].TVDBID != "100" {
		t.Fatalf("results = %+v", results)
	}
}

func TestSeasonTypeTag(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"official", "default"},
		{"Official", "default"},
		{"", "default"},
		{"dvd", "dvd"},
		{"Absolute", "absolute"},
	}
	for _, tt := range tests {
		if got := SeasonTypeTag(tt.in); got != tt.want {
			t.Errorf("SeasonTypeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := SeasonOrderFromTag("default"); got != "official" {
		t.Errorf("SeasonOrderFromTag(default) = %q", got)
	}
	if got := SeasonOrderFromTag("dvd"); got != "dvd" {
		t.Errorf("SeasonOrderFromTag(dvd) = %q", got)
	}
}
