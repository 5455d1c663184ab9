package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"cinemood/models"
)

// Minimal TMDB v3 client (discover, movie details and watch provider endpoints we need)

const (
	tmdbBaseURL      = "https://api.themoviedb.org/3"
	tmdbPosterBase   = "https://image.tmdb.org/t/p/w500"
	tmdbMinVoteCount = 100
)

type tmdbClient struct {
	apiKey string
	region string
	httpc  *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newTMDBClient(apiKey, region string, httpc *http.Client) *tmdbClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = "US"
	}
	return &tmdbClient{
		apiKey:      strings.TrimSpace(apiKey),
		region:      region,
		httpc:       httpc,
		minInterval: 20 * time.Millisecond,
	}
}

func (c *tmdbClient) isConfigured() bool {
	return c.apiKey != ""
}

// doGET performs a GET against the TMDB API with throttling and retry on
// rate limits and server errors. Client errors (4xx other than 429) are not
// retried. Responses decode tolerantly: absent keys become zero values.
func (c *tmdbClient) doGET(ctx context.Context, path string, q url.Values, v any) error {
	if q == nil {
		q = url.Values{}
	}
	q.Set("api_key", c.apiKey)
	endpoint := tmdbBaseURL + path + "?" + q.Encode()

	var lastErr error
	backoff := 300 * time.Millisecond
	for attempt := 0; attempt < 3; attempt++ {
		c.throttleMu.Lock()
		since := time.Since(c.lastRequest)
		if since < c.minInterval {
			time.Sleep(c.minInterval - since)
		}
		c.lastRequest = time.Now()
		c.throttleMu.Unlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("create tmdb request: %w", err)
		}
		resp, err := c.httpc.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(backoff)
			backoff *= 2
			continue
		}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					time.Sleep(time.Duration(secs) * time.Second)
				}
			} else {
				time.Sleep(backoff)
				backoff *= 2
			}
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			lastErr = fmt.Errorf("tmdb get %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
			continue
		}
		if resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return fmt.Errorf("tmdb get %s failed: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
		}
		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode tmdb response for %s: %w", path, err)
		}
		return nil
	}
	return lastErr
}

// discoverQuery holds the parameters for a /discover/movie call.
type discoverQuery struct {
	genreIDs   []int64
	sortBy     string
	page       int
	releaseGTE string
	releaseLTE string
}

type tmdbDiscoverResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		ReleaseDate string  `json:"release_date"`
		Popularity  float64 `json:"popularity"`
	} `json:"results"`
	TotalPages int `json:"total_pages"`
}

func (c *tmdbClient) discoverMovies(ctx context.Context, query discoverQuery) ([]models.CandidateMovie, error) {
	ids := make([]string, 0, len(query.genreIDs))
	for _, id := range query.genreIDs {
		ids = append(ids, strconv.FormatInt(id, 10))
	}

	q := url.Values{}
	q.Set("with_genres", strings.Join(ids, ","))
	q.Set("sort_by", query.sortBy)
	q.Set("page", strconv.Itoa(query.page))
	q.Set("vote_count.gte", strconv.Itoa(tmdbMinVoteCount))
	if query.releaseGTE != "" {
		q.Set("primary_release_date.gte", query.releaseGTE)
	}
	if query.releaseLTE != "" {
		q.Set("primary_release_date.lte", query.releaseLTE)
	}

	var resp tmdbDiscoverResponse
	if err := c.doGET(ctx, "/discover/movie", q, &resp); err != nil {
		return nil, err
	}

	out := make([]models.CandidateMovie, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, models.CandidateMovie{
			ID:          r.ID,
			Title:       r.Title,
			ReleaseDate: r.ReleaseDate,
			Popularity:  r.Popularity,
		})
	}
	return out, nil
}

type tmdbMovieDetails struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
	Popularity  float64 `json:"popularity"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Credits *struct {
		Crew []struct {
			Name string `json:"name"`
			Job  string `json:"job"`
		} `json:"crew"`
	} `json:"credits"`
}

func (c *tmdbClient) movieDetails(ctx context.Context, movieID int64) (*tmdbMovieDetails, error) {
	q := url.Values{}
	q.Set("append_to_response", "credits")

	var details tmdbMovieDetails
	if err := c.doGET(ctx, fmt.Sprintf("/movie/%d", movieID), q, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

type tmdbProviderEntry struct {
	ProviderName string `json:"provider_name"`
}

type tmdbRegionProviders struct {
	Flatrate []tmdbProviderEntry `json:"flatrate"`
	Rent     []tmdbProviderEntry `json:"rent"`
}

type tmdbProvidersResponse struct {
	Results map[string]tmdbRegionProviders `json:"results"`
}

// movieProviders returns the watch providers for the configured region.
// A movie with no data for the region returns an empty struct, not an error.
func (c *tmdbClient) movieProviders(ctx context.Context, movieID int64) (tmdbRegionProviders, error) {
	var resp tmdbProvidersResponse
	if err := c.doGET(ctx, fmt.Sprintf("/movie/%d/watch/providers", movieID), nil, &resp); err != nil {
		return tmdbRegionProviders{}, err
	}
	return resp.Results[c.region], nil
}

func posterURL(path string) string {
	if strings.TrimSpace(path) == "" {
		return ""
	}
	return tmdbPosterBase + path
}
