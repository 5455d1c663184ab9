package recommender

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestSortKeyForMood(t *testing.T) {
	tests := map[string]string{
		"happy":      "popularity.desc",
		"sad":        "vote_average.desc",
		"relaxed":    "vote_average.desc",
		"excited":    "popularity.desc",
		"thoughtful": "vote_count.desc",
		"nostalgic":  "primary_release_date.asc",
		"curious":    "popularity.desc",
		"  Happy  ":   "popularity.desc",
		"":           "popularity.desc",
	}
	for mood, want := range tests {
		if got := sortKeyForMood(mood); got != want {
			t.Fatalf("sortKeyForMood(%q) = %q, want %q", mood, got, want)
		}
	}
}

func TestReleaseRangeForDecade(t *testing.T) {
	tests := []struct {
		pref    string
		wantGTE string
		wantLTE string
	}{
		{"modern", "2010-01-01", ""},
		{"mostly modern cinema", "2010-01-01", ""},
		{"classic", "", "1989-12-31"},
		{"90s", "1990-01-01", "1999-12-31"},
		{"whatever", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		gte, lte := releaseRangeForDecade(tt.pref)
		if gte != tt.wantGTE || lte != tt.wantLTE {
			t.Fatalf("releaseRangeForDecade(%q) = %q, %q; want %q, %q", tt.pref, gte, lte, tt.wantGTE, tt.wantLTE)
		}
	}
}

func TestSearchCandidatesBuildsDiscoverQuery(t *testing.T) {
	var gotQuery map[string]string
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/3/discover/movie" {
			t.Fatalf("unexpected path: %s", req.URL.Path)
		}
		gotQuery = map[string]string{}
		for k := range req.URL.Query() {
			gotQuery[k] = req.URL.Query().Get(k)
		}
		return jsonResponse(http.StatusOK, `{"page":1,"results":[{"id":1,"title":"A","release_date":"1999-01-01","popularity":9.5}]}`), nil
	}))

	candidates := svc.searchCandidates(context.Background(), []int64{18, 35, 28, 27}, "nostalgic", "90s kid at heart", 1)

	if len(candidates) != 1 || candidates[0].ID != 1 || candidates[0].Title != "A" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	expect := map[string]string{
		"with_genres":              "18,35,28",
		"sort_by":                  "primary_release_date.asc",
		"page":                     "1",
		"vote_count.gte":           "100",
		"primary_release_date.gte": "1990-01-01",
		"primary_release_date.lte": "1999-12-31",
	}
	for k, want := range expect {
		if gotQuery[k] != want {
			t.Fatalf("query %s = %q, want %q", k, gotQuery[k], want)
		}
	}
}

func TestSearchCandidatesNoDateFilterForUnknownDecade(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		q := req.URL.Query()
		if q.Has("primary_release_date.gte") || q.Has("primary_release_date.lte") {
			t.Fatalf("unexpected date filter in query: %s", req.URL.RawQuery)
		}
		return jsonResponse(http.StatusOK, `{"results":[]}`), nil
	}))
	svc.searchCandidates(context.Background(), []int64{18}, "happy", "eclectic", 1)
}

func TestSearchCandidatesAbsorbsFailures(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	}))
	// Transport failure looks like zero matches, never an error.
	if got := svc.searchCandidates(context.Background(), []int64{18}, "happy", "", 1); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}

	svc = newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"status_message":"not found"}`), nil
	}))
	if got := svc.searchCandidates(context.Background(), []int64{18}, "happy", "", 1); len(got) != 0 {
		t.Fatalf("expected empty result on HTTP error, got %+v", got)
	}
}
