package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// maxResponseSize caps how much of a content API response is read. A
// healthy listing page is a few hundred kilobytes at most.
const maxResponseSize = 64 << 20

// Client reads posts, categories and tags from the content API. It is a
// read-only consumer: one GET per call, no retries, no caching. Errors
// carry the full request URL so a failed generation can be traced back
// to the exact upstream call.
type Client struct {
	httpClient *http.Client
	apiURL     string
	userAgent  string
	pageSize   int
}

func NewClient(httpClient *http.Client, apiURL string, userAgent string, pageSize int) *Client {
	return &Client{
		httpClient: httpClient,
		apiURL:     strings.TrimRight(apiURL, "/"),
		userAgent:  userAgent,
		pageSize:   pageSize,
	}
}

// ListPosts fetches a single page of posts, optionally narrowed to a
// category or tag.
func (c *Client) ListPosts(ctx context.Context, opts ListOptions) (*PostPage, error) {
	page := opts.Page
	if page < 1 {
		page = 1
	}
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = c.pageSize
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}
	if opts.Tag != "" {
		query.Set("tag", opts.Tag)
	}

	var result PostPage
	if err := c.get(ctx, "/posts", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListAllPosts walks the paginated post listing until every post has
// been fetched. Used for sitemap generation, which needs the complete
// URL inventory rather than the newest slice.
func (c *Client) ListAllPosts(ctx context.Context) ([]Post, error) {
	var all []Post

	for page := 1; ; page++ {
		result, err := c.ListPosts(ctx, ListOptions{Page: page, PageSize: c.pageSize})
		if err != nil {
			return nil, err
		}
		if len(result.Posts) == 0 {
			break
		}

		all = append(all, result.Posts...)

		if result.Total > 0 && len(all) >= result.Total {
			break
		}
	}

	return all, nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result []Category
	if err := c.get(ctx, "/categories", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListTags fetches every tag.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var result []Tag
	if err := c.get(ctx, "/tags", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v any) error {
	endpoint := c.apiURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: HTTP %d", endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", endpoint, err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", endpoint, err)
	}

	return nil
}
