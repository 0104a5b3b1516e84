package models

// ArticleSource names the outlet an article came from.
type ArticleSource struct {
	Name string  `json:"name"`
	ID   *string `json:"id"`
}

// Article is one normalized news item.
type Article struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Source      ArticleSource `json:"source"`
	Author      string        `json:"author"`
	PublishedAt string        `json:"published_at"`
	URLToImage  string        `json:"url_to_image,omitempty"`
}

// QueryInfo echoes the filters a news request was served with.
type QueryInfo struct {
	SearchQuery      string `json:"search_query,omitempty"`
	Category         string `json:"category,omitempty"`
	Country          string `json:"country,omitempty"`
	TotalResults     int    `json:"total_results"`
	ArticlesReturned int    `json:"articles_returned"`
}

// NewsDigest is the normalized news payload.
type NewsDigest struct {
	QueryInfo   QueryInfo `json:"query_info"`
	Articles    []Article `json:"articles"`
	Source      string    `json:"source"`
	RetrievedAt string    `json:"retrieved_at"`
}
