// Package geocode adapts the Nominatim search API to the Geocoder port.
package geocode

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

	"transport-route-service/internal/domain"
	"transport-route-service/internal/retry"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "transport-route-service/1.0"
	defaultTimeout   = 10 * time.Second
)

// Nominatim is a search client for the public Nominatim endpoint. It
// rate-limits itself to one request per minInterval, as the public
// instance requires.
type Nominatim struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	countryHint string
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

type Option func(*Nominatim)

func WithBaseURL(baseURL string) Option {
	return func(n *Nominatim) {
		if strings.TrimSpace(baseURL) != "" {
			n.baseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(n *Nominatim) {
		if client != nil {
			n.httpClient = client
		}
	}
}

// WithCountryHint sets the country appended to searches that do not
// already name it, biasing ambiguous addresses. Empty disables the hint.
func WithCountryHint(country string) Option {
	return func(n *Nominatim) { n.countryHint = country }
}

func WithMinInterval(interval time.Duration) Option {
	return func(n *Nominatim) { n.minInterval = interval }
}

func New(opts ...Option) *Nominatim {
	n := &Nominatim{
		baseURL:     DefaultBaseURL,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		userAgent:   defaultUserAgent,
		countryHint: "Denmark",
		minInterval: time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Geocode resolves an address to its best-match coordinate. An empty
// result set reports found=false; non-200 statuses surface as
// retry.StatusError so the retry predicate can classify them.
func (n *Nominatim) Geocode(ctx context.Context, address string) (domain.Coordinate, bool, error) {
	if strings.TrimSpace(address) == "" {
		return domain.Coordinate{}, false, nil
	}

	if err := n.waitRateLimit(ctx); err != nil {
		return domain.Coordinate{}, false, err
	}

	endpoint := strings.TrimRight(n.baseURL, "/") + "/search"
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", n.searchQuery(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("create geocode request: %w", err)
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return domain.Coordinate{}, false, &retry.StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("parse longitude %q: %w", results[0].Lon, err)
	}

	coord, err := domain.NewCoordinate(lat, lon)
	if err != nil {
		return domain.Coordinate{}, false, err
	}
	return coord, true, nil
}

// searchQuery appends the country hint unless the address already names
// the country (in English or its own language).
func (n *Nominatim) searchQuery(address string) string {
	if n.countryHint == "" {
		return address
	}
	lower := strings.ToLower(address)
	hint := strings.ToLower(n.countryHint)
	if strings.Contains(lower, hint) || (hint == "denmark" && strings.Contains(lower, "danmark")) {
		return address
	}
	return address + ", " + n.countryHint
}

func (n *Nominatim) waitRateLimit(ctx context.Context) error {
	if n.minInterval <= 0 {
		return nil
	}
	n.mu.Lock()
	now := time.Now()
	next := n.lastRequest.Add(n.minInterval)
	if !next.After(now) {
		n.lastRequest = now
		n.mu.Unlock()
		return nil
	}
	n.lastRequest = next
	n.mu.Unlock()

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
