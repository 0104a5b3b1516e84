package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/apifuse/apifuse/internal/models"
	"github.com/apifuse/apifuse/internal/tools"
	"github.com/rs/zerolog/log"
)

const newsAPIBaseURL = "https://newsapi.org/v2"

// NewsService fetches headlines and topic searches from NewsAPI.
type NewsService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewNewsService(apiKey string, timeout time.Duration) *NewsService {
	return &NewsService{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}
}

// WithBaseURL overrides the provider endpoint, used by tests.
func (s *NewsService) WithBaseURL(u string) *NewsService {
	s.baseURL = u
	return s
}

type newsAPIResponse struct {
	TotalResults int `json:"totalResults"`
	Articles     []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string  `json:"name"`
			ID   *string `json:"id"`
		} `json:"source"`
		Author      string `json:"author"`
		PublishedAt string `json:"publishedAt"`
		URLToImage  string `json:"urlToImage"`
	} `json:"articles"`
}

// Headlines fetches news for the given filters, all optional. A non-empty
// query selects the full-text search endpoint; otherwise top headlines,
// defaulting to the US feed when neither country nor category narrows it.
func (s *NewsService) Headlines(ctx context.Context, query, category, country string, pageSize int) (*models.NewsDigest, error) {
	if s.apiKey == "" {
		return nil, tools.MissingCredential("News API")
	}

	var endpoint string
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(pageSize))

	if query != "" {
		endpoint = "everything"
		q.Set("q", query)
		q.Set("sortBy", "publishedAt")
		q.Set("language", "en")
	} else {
		endpoint = "top-headlines"
		if category != "" {
			q.Set("category", category)
		}
		if country != "" {
			q.Set("country", country)
		} else if category == "" {
			q.Set("country", "us")
		}
	}
	q.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, tools.Upstream("News API", 0, err.Error())
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("endpoint", endpoint).Msg("newsapi request failed")
		return nil, tools.Upstream("News API", 0, err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, tools.RateLimited("News API")
	default:
		return nil, tools.Upstream("News API", resp.StatusCode, "")
	}

	var data newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, tools.Upstream("News API", resp.StatusCode, "malformed response body")
	}

	return s.normalizeNews(&data, query, category, country), nil
}

func (s *NewsService) normalizeNews(data *newsAPIResponse, query, category, country string) *models.NewsDigest {
	articles := make([]models.Article, 0, len(data.Articles))
	for _, a := range data.Articles {
		published := "Unknown"
		if a.PublishedAt != "" {
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				published = t.UTC().Format("2006-01-02 15:04:05 UTC")
			} else {
				published = a.PublishedAt
			}
		}

		title := a.Title
		if title == "" {
			title = "No title"
		}
		desc := a.Description
		if desc == "" {
			desc = "No description available"
		}
		author := a.Author
		if author == "" {
			author = "Unknown"
		}
		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "Unknown"
		}

		articles = append(articles, models.Article{
			Title:       title,
			Description: desc,
			URL:         a.URL,
			Source:      models.ArticleSource{Name: sourceName, ID: a.Source.ID},
			Author:      author,
			PublishedAt: published,
			URLToImage:  a.URLToImage,
		})
	}

	return &models.NewsDigest{
		QueryInfo: models.QueryInfo{
			SearchQuery:      query,
			Category:         category,
			Country:          country,
			TotalResults:     data.TotalResults,
			ArticlesReturned: len(articles),
		},
		Articles:    articles,
		Source:      "News API",
		RetrievedAt: s.now().UTC().Format("2006-01-02 15:04:05 UTC"),
	}
}
