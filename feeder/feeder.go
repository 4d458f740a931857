package feeder

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/samber/lo"

	"blog-server/dto"
	"blog-server/parser"
)

// FeedItem is a feed entry reduced to what a post needs. Content is plain
// text.
type FeedItem struct {
	Title       string
	Link        string
	Content     string
	Author      string
	Categories  []string
	PublishedAt time.Time
}

// FetchItems downloads and parses the RSS or Atom feed at feedURL.
// If limit is greater than 0, it returns only the first limit items.
// A nil client uses http.DefaultClient.
func FetchItems(ctx context.Context, feedURL string, limit int, client *http.Client) ([]FeedItem, error) {
	fp := gofeed.NewParser()
	if client != nil {
		fp.Client = client
	}

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		items = append(items, toFeedItem(item))
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func toFeedItem(item *gofeed.Item) FeedItem {
	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	body := item.Content
	if strings.TrimSpace(body) == "" {
		body = item.Description
	}

	var author string
	if item.Author != nil {
		author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	}

	return FeedItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        item.Link,
		Content:     parser.ExtractText(body),
		Author:      strings.TrimSpace(author),
		Categories:  dto.CleanTags(item.Categories),
		PublishedAt: published,
	}
}

// ToPostPayload maps a feed item to a create payload. The first feed
// category becomes the post category and all of them become tags. Items
// without a body link back to the source.
func ToPostPayload(item FeedItem, status string) dto.PostPayload {
	content := item.Content
	if content == "" {
		content = item.Link
	} else if item.Link != "" {
		content += "\n\nSource: " + item.Link
	}

	var category string
	if len(item.Categories) > 0 {
		category = item.Categories[0]
	}

	return dto.PostPayload{
		Title:    lo.Substring(item.Title, 0, 200),
		Content:  content,
		Author:   item.Author,
		Category: category,
		Tags:     dto.Tags(lo.Uniq(item.Categories)...),
		Status:   status,
	}
}
