// package preview resolves short audio previews through the Deezer search API.
//
// The catalog API does not expose preview clips, so the track-press path
// looks the track up by title and artist here instead.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ayomide-o/sportify/internal/shared"
)

const defaultBaseURL = "https://api.deezer.com"

// Preview is the best-match clip for a track lookup.
type Preview struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	URL    string `json:"preview"`
}

// Client queries the preview lookup service. Requests are unauthenticated.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a preview lookup client.
//
// An empty baseURL selects the public Deezer API; a nil httpClient selects
// [http.DefaultClient].
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// BestMatch returns the first preview the service finds for the given title
// and artist, or ErrPreviewUnavailable when there is no usable match.
func (c *Client) BestMatch(ctx context.Context, title, artist string) (*Preview, error) {
	query := fmt.Sprintf(`artist:%q track:%q`, artist, title)
	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	var response struct {
		Data []struct {
			ID      int64  `json:"id"`
			Title   string `json:"title"`
			Preview string `json:"preview"`
			Artist  struct {
				Name string `json:"name"`
			} `json:"artist"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(response.Data) == 0 || response.Data[0].Preview == "" {
		return nil, shared.ErrPreviewUnavailable
	}

	match := response.Data[0]
	return &Preview{
		ID:     match.ID,
		Title:  match.Title,
		Artist: match.Artist.Name,
		URL:    match.Preview,
	}, nil
}
