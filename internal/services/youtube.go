// YouTube Data API [Searcher] implementation
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/jukebox/internal/models"
	"github.com/desertthunder/jukebox/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultYTBaseURL  string = "https://www.googleapis.com/youtube/v3"
	defaultMaxResults int    = 8
)

// APIError is an error object reported by the search service.
//
// It wraps [shared.ErrAPIRequest] so callers can match either the kind or the concrete type.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	Reason     string `json:"-"`
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube API error (status %d, %s): %s", e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube API error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap also reports [shared.ErrInvalidCredentials] when the service rejected the key itself.
func (e *APIError) Unwrap() []error {
	switch e.Reason {
	case "keyInvalid", "keyExpired":
		return []error{shared.ErrAPIRequest, shared.ErrInvalidCredentials}
	}
	return []error{shared.ErrAPIRequest}
}

// YouTubeThumbnail is a single thumbnail rendition.
type YouTubeThumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// YouTubeSearchItem is one entry of a search response.
type YouTubeSearchItem struct {
	ID struct {
		Kind    string `json:"kind"`
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet struct {
		Title        string                      `json:"title"`
		ChannelTitle string                      `json:"channelTitle"`
		Thumbnails   map[string]YouTubeThumbnail `json:"thumbnails"`
	} `json:"snippet"`
}

// youtubeSearchResponse covers both the success and the error body shapes.
type youtubeSearchResponse struct {
	Items []YouTubeSearchItem `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// YouTubeOpts configures a [YouTubeService].
type YouTubeOpts struct {
	APIKey      string
	BaseURL     string
	MaxResults  int
	QuerySuffix string
	RateLimit   float64 // requests per second; 0 disables limiting
	HTTPClient  *http.Client
}

// YouTubeService implements the [Searcher] interface for the YouTube Data API.
type YouTubeService struct {
	apiKey      string
	baseURL     string
	maxResults  int
	querySuffix string
	limiter     *rate.Limiter
	httpClient  *http.Client
}

// NewYouTubeService creates a new YouTube search client.
func NewYouTubeService(opts YouTubeOpts) *YouTubeService {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultYTBaseURL
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = defaultMaxResults
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}

	return &YouTubeService{
		apiKey:      opts.APIKey,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		maxResults:  opts.MaxResults,
		querySuffix: opts.QuerySuffix,
		limiter:     limiter,
		httpClient:  opts.HTTPClient,
	}
}

// NewYouTubeServiceFromConfig builds the client from the [shared.Config] sections.
//
// A nil client gets one using the configured search timeout.
func NewYouTubeServiceFromConfig(config *shared.Config, client *http.Client) *YouTubeService {
	if client == nil {
		client = http.DefaultClient
		if timeout := config.Search.Timeout(); timeout > 0 {
			client = &http.Client{Timeout: timeout}
		}
	}

	return NewYouTubeService(YouTubeOpts{
		APIKey:      config.Credentials.YouTube.APIKey,
		BaseURL:     config.Credentials.YouTube.BaseURL,
		MaxResults:  config.Search.MaxResults,
		QuerySuffix: config.Search.QuerySuffix,
		RateLimit:   config.Search.RateLimit,
		HTTPClient:  client,
	})
}

// Name returns the service name.
func (y *YouTubeService) Name() string {
	return "YouTube"
}

// Search runs a video search.
//
// Calls GET {base}/search?part=snippet&type=video&q={query suffix}&key={key}&maxResults={n}.
func (y *YouTubeService) Search(ctx context.Context, query string) ([]models.Video, error) {
	if y.apiKey == "" || y.apiKey == shared.PlaceholderAPIKey {
		return nil, fmt.Errorf("%w: YouTube Data API key is not set", shared.ErrMissingCredentials)
	}

	q := shared.NormalizeQuery(query, y.querySuffix)
	if q == "" {
		return nil, fmt.Errorf("%w: empty search query", shared.ErrInvalidInput)
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTransport, err)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", q)
	params.Set("key", y.apiKey)
	params.Set("maxResults", strconv.Itoa(y.maxResults))

	var resp youtubeSearchResponse
	if err := y.doRequest(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	videos := make([]models.Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, models.Video{
			ID:        item.ID.VideoID,
			Title:     item.Snippet.Title,
			Thumbnail: item.Snippet.Thumbnails["default"].URL,
		})
	}

	return videos, nil
}

func (y *YouTubeService) doRequest(ctx context.Context, endpoint string, result *youtubeSearchResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", shared.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %w: %v", shared.ErrTransport, shared.ErrTimeout, err)
		}
		return fmt.Errorf("%w: request failed: %v", shared.ErrTransport, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("%w: failed to decode response: %v", shared.ErrTransport, err)
	}

	if result.Error != nil {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: result.Error.Code, Message: result.Error.Message}
		if len(result.Error.Errors) > 0 {
			apiErr.Reason = result.Error.Errors[0].Reason
		}
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Code: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	return nil
}

// IsAPIError reports whether err carries an upstream [*APIError] and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
