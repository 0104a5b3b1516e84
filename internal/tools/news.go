package tools

import (
	"context"
	"strings"

	"github.com/apifuse/apifuse/internal/models"
)

// NewsAPI is the provider call the news tool makes.
type NewsAPI interface {
	Headlines(ctx context.Context, query, category, country string, pageSize int) (*models.NewsDigest, error)
}

type newsParams struct {
	Query    string `json:"query,omitempty" jsonschema:"description=Search query for specific news topics (optional)"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=business entertainment general health science sports technology" jsonschema:"description=News category (optional),enum=business,enum=entertainment,enum=general,enum=health,enum=science,enum=sports,enum=technology"`
	Country  string `json:"country,omitempty" validate:"omitempty,len=2,alpha" jsonschema:"description=Country code for country-specific news (e.g. 'us', 'gb', 'ca')"`
	PageSize int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=100" jsonschema:"description=Number of articles to return (1-100),minimum=1,maximum=100,default=10"`
}

// NewsTool returns the get_news capability. Every filter is optional; with
// none set it returns the general top-headlines feed.
func NewsTool(api NewsAPI) Tool {
	return Tool{
		Name:        "get_news",
		Description: "Get latest news headlines by topic, category, or country",
		InputSchema: inputSchema(&newsParams{}),
		Execute: func(ctx context.Context, args map[string]any) (any, error) {
			var p newsParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, err
			}

			if p.PageSize == 0 {
				p.PageSize = 10
			}
			p.Country = strings.ToLower(strings.TrimSpace(p.Country))

			return api.Headlines(ctx, strings.TrimSpace(p.Query), p.Category, p.Country, p.PageSize)
		},
	}
}
