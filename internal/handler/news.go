package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	newsCacheKey = "news:welding"
	newsCacheTTL = 15 * time.Minute
	newsMax      = 5
)

// NewsArticle is one welding-industry headline.
type NewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      string `json:"source"`
}

type newsPayload struct {
	Articles []NewsArticle `json:"articles"`
	Source   string        `json:"source"`
}

// NewsHandler fetches welding news from the GNews API, caching results in
// Redis. Without an API key, on fetch errors, or on an empty result it
// serves the curated fallback set, so the endpoint always answers 200.
type NewsHandler struct {
	APIKey  string
	BaseURL string
	RDB     *redis.Client // nil disables caching
	Client  *http.Client
}

func NewNewsHandler(apiKey string, rdb *redis.Client) *NewsHandler {
	return &NewsHandler{
		APIKey:  apiKey,
		BaseURL: "https://gnews.io/api/v4",
		RDB:     rdb,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// gnewsResponse mirrors the slice of the GNews search response we read.
type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Image       string `json:"image"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Latest serves the news feed.
func (h *NewsHandler) Latest(c echo.Context) error {
	ctx := c.Request().Context()

	if h.RDB != nil {
		if bs, err := h.RDB.Get(ctx, newsCacheKey).Bytes(); err == nil {
			var cached newsPayload
			if json.Unmarshal(bs, &cached) == nil {
				return jsonOK(c, http.StatusOK, cached)
			}
		}
	}

	if h.APIKey == "" {
		return jsonOK(c, http.StatusOK, newsPayload{Articles: fallbackNews(), Source: "fallback"})
	}

	articles, err := h.fetch(ctx)
	if err != nil || len(articles) == 0 {
		if err != nil {
			log.Printf("news: fetch failed: %v", err)
		}
		return jsonOK(c, http.StatusOK, newsPayload{Articles: fallbackNews(), Source: "fallback"})
	}

	payload := newsPayload{Articles: articles, Source: "gnews"}
	if h.RDB != nil {
		if bs, err := json.Marshal(payload); err == nil {
			_ = h.RDB.SetEx(context.Background(), newsCacheKey, bs, newsCacheTTL).Err()
		}
	}
	return jsonOK(c, http.StatusOK, payload)
}

func (h *NewsHandler) fetch(ctx context.Context) ([]NewsArticle, error) {
	q := url.Values{}
	q.Set("q", "welding")
	q.Set("token", h.APIKey)
	q.Set("lang", "en")
	q.Set("max", fmt.Sprint(newsMax))
	q.Set("sortby", "publishedAt")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gnews returned %d", resp.StatusCode)
	}

	var body gnewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := make([]NewsArticle, 0, len(body.Articles))
	for _, a := range body.Articles {
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		out = append(out, NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Image:       a.Image,
			PublishedAt: a.PublishedAt,
			Source:      source,
		})
	}
	return out, nil
}
