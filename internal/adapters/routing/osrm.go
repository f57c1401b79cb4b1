// Package routing adapts the OSRM route API to the RouteProvider port.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"transport-route-service/internal/domain"
	"transport-route-service/internal/retry"
)

const (
	DefaultBaseURL = "https://router.project-osrm.org/route/v1/driving"
	defaultTimeout = 10 * time.Second
)

// OSRM issues a single route request per coordinate pair. A response
// without a usable route is "no result" and triggers the caller's
// fallback, not an error.
type OSRM struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*OSRM)

func WithBaseURL(baseURL string) Option {
	return func(o *OSRM) {
		if strings.TrimSpace(baseURL) != "" {
			o.baseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(o *OSRM) {
		if client != nil {
			o.httpClient = client
		}
	}
}

func New(opts ...Option) *OSRM {
	o := &OSRM{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type routeResponse struct {
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// RouteDistance returns the driven distance in kilometers. OSRM takes
// lon,lat pairs; distances come back in meters.
func (o *OSRM) RouteDistance(ctx context.Context, from, to domain.Coordinate) (float64, bool, error) {
	u := fmt.Sprintf("%s/%s;%s?overview=false&alternatives=false",
		strings.TrimRight(o.baseURL, "/"), lonLat(from), lonLat(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, false, fmt.Errorf("create route request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return 0, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return 0, false, &retry.StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}

	var decoded routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, false, fmt.Errorf("decode route response: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return 0, false, nil
	}

	return decoded.Routes[0].Distance / 1000.0, true, nil
}

func lonLat(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lat, 'f', -1, 64)
}
