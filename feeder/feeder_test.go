package feeder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>Example</title>
  <link>https://example.com</link>
  <description>Example feed</description>
  <item>
    <title>First post</title>
    <link>https://example.com/1</link>
    <author>ann@example.com (Ann)</author>
    <category>Go</category>
    <category>Web</category>
    <category>Go</category>
    <pubDate>Mon, 04 Mar 2024 10:00:00 GMT</pubDate>
    <content:encoded><![CDATA[<p>Hello <b>world</b></p>]]></content:encoded>
  </item>
  <item>
    <title>Second post</title>
    <link>https://example.com/2</link>
    <description>Only a summary</description>
  </item>
  <item>
    <title>Third post</title>
    <link>https://example.com/3</link>
  </item>
</channel>
</rss>`

func serveFeed(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchItems(t *testing.T) {
	srv := serveFeed(t)

	items, err := FetchItems(context.Background(), srv.URL, 0, srv.Client())
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, "First post", first.Title)
	assert.Equal(t, "https://example.com/1", first.Link)
	assert.Contains(t, first.Content, "Hello")
	assert.Contains(t, first.Content, "world")
	assert.NotContains(t, first.Content, "<b>")
	assert.Equal(t, []string{"Go", "Web", "Go"}, first.Categories)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC), first.PublishedAt.UTC())

	assert.Equal(t, "Only a summary", items[1].Content)
	assert.Empty(t, items[2].Content)
}

func TestFetchItemsLimit(t *testing.T) {
	srv := serveFeed(t)

	items, err := FetchItems(context.Background(), srv.URL, 2, nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchItemsBadFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := FetchItems(context.Background(), srv.URL, 0, nil)
	assert.Error(t, err)
}

func TestToPostPayload(t *testing.T) {
	p := ToPostPayload(FeedItem{
		Title:      "First post",
		Link:       "https://example.com/1",
		Content:    "Hello world",
		Author:     "Ann",
		Categories: []string{"Go", "Web", "Go"},
	}, "published")

	assert.Equal(t, "First post", p.Title)
	assert.Equal(t, "Hello world\n\nSource: https://example.com/1", p.Content)
	assert.Equal(t, "Ann", p.Author)
	assert.Equal(t, "Go", p.Category)
	assert.Equal(t, []string{"Go", "Web"}, p.Tags.Values)
	assert.Equal(t, "published", p.Status)

	bare := ToPostPayload(FeedItem{Title: strings.Repeat("t", 250), Link: "https://example.com/3"}, "")
	assert.Equal(t, "https://example.com/3", bare.Content)
	assert.Len(t, []rune(bare.Title), 200)
	assert.Empty(t, bare.Category)
	assert.Empty(t, bare.Tags.Values)
}
