package post

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/hitoshi/mdblog/internal/model"
)

// FeedConfig はRSSフィード生成の設定。
type FeedConfig struct {
	// Title はチャンネルタイトル。
	Title string
	// BaseURL はブログの公開URL。記事リンクの組み立てに使用する。
	BaseURL string
	// Description はチャンネル説明文。
	Description string
}

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel channelXML `xml:"channel"`
}

type channelXML struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []itemXML `xml:"item"`
}

type itemXML struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description,omitempty"`
}

// RenderFeed は記事一覧からRSS 2.0フィードを生成する。
func RenderFeed(ctx context.Context, config FeedConfig, posts []model.Post) ([]byte, error) {
	base := strings.TrimSuffix(config.BaseURL, "/")

	items := make([]itemXML, 0, len(posts))
	for _, p := range posts {
		items = append(items, itemXML{
			Title:       p.Title,
			Link:        fmt.Sprintf("%s/posts/%s", base, p.Slug),
			GUID:        fmt.Sprintf("%s/posts/%s", base, p.Slug),
			PubDate:     p.Date.UTC().Format(time.RFC1123Z),
			Description: p.Excerpt,
		})
	}

	out := rssXML{
		Version: "2.0",
		Channel: channelXML{
			Title:       config.Title,
			Link:        base,
			Description: config.Description,
			Items:       items,
		},
	}

	body, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render feed: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
