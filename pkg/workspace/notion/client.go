package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"notesync-be/pkg/workspace"

	"github.com/patrickmn/go-cache"
)

const notionVersion = "2022-06-28"

// Client publishes pages via the Notion HTTP API. The idempotency key maps to a
// page id through the recorded external ref first, then through a local cache
// that guards against duplicate creates when a create succeeded but its
// response was lost inside a retry burst.
type Client struct {
	apiKey       string
	parentPageId string
	baseURL      string
	client       *http.Client
	pageCache    *cache.Cache
}

var _ workspace.Publisher = &Client{}

func NewClient(apiKey, parentPageId string) *Client {
	return NewClientWithBaseURL(apiKey, parentPageId, "https://api.notion.com/v1")
}

func NewClientWithBaseURL(apiKey, parentPageId, baseURL string) *Client {
	return &Client{
		apiKey:       apiKey,
		parentPageId: parentPageId,
		baseURL:      baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		pageCache: cache.New(24*time.Hour, 10*time.Minute),
	}
}

func (c *Client) Publish(ctx context.Context, page workspace.Page) (string, error) {
	pageId := page.ExternalRef
	if pageId == "" {
		if cached, found := c.pageCache.Get(page.IdempotencyKey); found {
			pageId = cached.(string)
		}
	}

	if pageId != "" {
		if err := c.updatePage(ctx, pageId, page); err != nil {
			return "", err
		}
		return pageId, nil
	}

	pageId, err := c.createPage(ctx, page)
	if err != nil {
		return "", err
	}
	c.pageCache.Set(page.IdempotencyKey, pageId, cache.DefaultExpiration)
	return pageId, nil
}

func (c *Client) buildProperties(page workspace.Page) map[string]interface{} {
	props := map[string]interface{}{
		"title": map[string]interface{}{
			"title": []map[string]interface{}{
				{"text": map[string]interface{}{"content": page.Title}},
			},
		},
	}
	return props
}

func (c *Client) createPage(ctx context.Context, page workspace.Page) (string, error) {
	children := MarkdownToBlocks(c.pageBody(page))

	payload := map[string]interface{}{
		"parent":     map[string]interface{}{"page_id": c.parentPageId},
		"properties": c.buildProperties(page),
		"children":   children,
	}

	var result struct {
		Id string `json:"id"`
	}
	if err := c.do(ctx, "POST", "/pages", payload, &result); err != nil {
		return "", err
	}
	if result.Id == "" {
		return "", fmt.Errorf("%w: create returned no page id", workspace.ErrUnavailable)
	}
	return result.Id, nil
}

func (c *Client) updatePage(ctx context.Context, pageId string, page workspace.Page) error {
	payload := map[string]interface{}{
		"properties": c.buildProperties(page),
	}
	return c.do(ctx, "PATCH", "/pages/"+pageId, payload, nil)
}

// pageBody renders the metadata header plus the formatted content. Parent-page
// targets carry Date/Status/Tags inline since plain pages have no custom
// property schema.
func (c *Client) pageBody(page workspace.Page) string {
	header := fmt.Sprintf("**Category:** %s | **Status:** %s", page.Category, page.Status)
	if page.TargetDate != "" {
		header += " | **Date:** " + page.TargetDate
	}
	if len(page.Tags) > 0 {
		header += "\n**Tags:** " + joinTags(page.Tags)
	}
	return header + "\n---\n" + page.Content
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += t
	}
	return out
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", workspace.ErrRejected, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", workspace.ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Notion-Version", notionVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", workspace.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", workspace.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", workspace.ErrUnavailable, resp.StatusCode, string(respBytes))
	default:
		return fmt.Errorf("%w: status %d: %s", workspace.ErrRejected, resp.StatusCode, string(respBytes))
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return fmt.Errorf("%w: unmarshal response: %v", workspace.ErrUnavailable, err)
		}
	}
	return nil
}
