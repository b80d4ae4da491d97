package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/couchcryptid/disaster-atlas/internal/domain"
	"github.com/couchcryptid/disaster-atlas/internal/observability"
)

const (
	defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

	// Candidates requested per query; the most relevant one above minRelevance wins.
	candidateLimit = 3
	minRelevance   = 0.6
)

// Client implements domain.Geocoder using the Mapbox Geocoding API.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// ForwardGeocode resolves a disaster location within a country to the
// coordinates of its first named place. A zero result with a nil error means
// nothing sufficiently relevant was found.
func (c *Client) ForwardGeocode(ctx context.Context, location, country string) (domain.GeocodingResult, error) {
	query := placeQuery(location, country)
	if query == "" {
		return domain.GeocodingResult{}, nil
	}

	start := time.Now()
	features, err := c.search(ctx, query)
	c.metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.GeocodingResult{}, err
	}

	best, ok := mostRelevant(features)
	if !ok {
		c.metrics.GeocodeRequests.WithLabelValues("empty").Inc()
		c.logger.Debug("mapbox returned no relevant match", "query", query, "candidates", len(features))
		return domain.GeocodingResult{}, nil
	}
	c.metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return domain.GeocodingResult{
		Lat:              best.Center[1],
		Lon:              best.Center[0],
		FormattedAddress: best.PlaceName,
		Confidence:       best.Relevance,
	}, nil
}

func (c *Client) search(ctx context.Context, query string) ([]feature, error) {
	params := url.Values{
		"access_token": {c.token},
		"autocomplete": {"false"},
		"limit":        {fmt.Sprint(candidateLimit)},
		"types":        {"place,locality,district,region"},
	}
	u := fmt.Sprintf("%s/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, body)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return decoded.Features, nil
}

// mostRelevant picks the highest-relevance feature with usable coordinates.
// Ties keep the first candidate.
func mostRelevant(features []feature) (feature, bool) {
	var best feature
	found := false
	for _, f := range features {
		if len(f.Center) != 2 || f.Relevance < minRelevance {
			continue
		}
		if !found || f.Relevance > best.Relevance {
			best, found = f, true
		}
	}
	return best, found
}

var (
	parenthetical = regexp.MustCompile(`\([^)]*\)`)
	adminSuffix   = regexp.MustCompile(`(?i)\s+(provinces?|districts?|regions?|states?|areas?|departments?|counties|county|municipalit(y|ies)|villages?|cities|city)$`)
)

// placeQuery reduces a location cell such as "Assam, Bihar provinces; Kerala"
// to its first place name and appends the country.
func placeQuery(location, country string) string {
	place := parenthetical.ReplaceAllString(location, "")
	if i := strings.IndexAny(place, ",;"); i >= 0 {
		place = place[:i]
	}
	place = strings.TrimSpace(adminSuffix.ReplaceAllString(strings.TrimSpace(place), ""))
	if place == "" {
		return ""
	}
	if country == "" {
		return place
	}
	return place + ", " + country
}

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Relevance float64   `json:"relevance"`
}
