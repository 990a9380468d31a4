package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/network"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

const testFeedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>财经要闻</title>
    <item>
      <title>央行发布最新货币政策报告</title>
      <link>%[1]s/articles/1</link>
      <description>报告指出稳健的货币政策将继续</description>
      <pubDate>Mon, 24 Aug 2026 08:00:00 GMT</pubDate>
    </item>
    <item>
      <title>沪深300指数上涨</title>
      <link>%[1]s/articles/2</link>
    </item>
    <item>
      <title></title>
      <link>%[1]s/articles/3</link>
    </item>
  </channel>
</rss>`

const testArticleHTML = `<!DOCTYPE html>
<html><head><title>央行发布最新货币政策报告</title></head>
<body>
<script>trackVisitor()</script>
<article>
<h1>央行发布最新货币政策报告</h1>
<p>报告指出, 稳健的货币政策将继续实施, 保持流动性合理充裕。市场分析人士认为, 这一表态符合预期。</p>
<p>债券市场对此反应平稳, 十年期国债收益率小幅波动。</p>
</article>
</body></html>`

func newNewsService(t *testing.T, feeds []string, client *http.Client) service.NewsService {
	t.Helper()
	db := testutil.NewTestDB(t)
	return service.NewNewsService(
		repository.NewNewsRepository(db),
		repository.NewSettingsRepository(db),
		network.NewClientFactoryForTest(client),
		feeds,
	)
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			fmt.Fprintf(w, testFeedTemplate, server.URL)
		case "/articles/1":
			w.Write([]byte(testArticleHTML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewsService_RefreshAll(t *testing.T) {
	server := newFeedServer(t)
	svc := newNewsService(t, []string{server.URL + "/feed.xml"}, server.Client())
	ctx := context.Background()

	require.NoError(t, svc.RefreshAll(ctx))

	items, err := svc.List(ctx, 0)
	require.NoError(t, err)
	// The item without a title is dropped
	require.Len(t, items, 2)
	for _, item := range items {
		require.Equal(t, "财经要闻", item.Source)
	}

	// Refreshing again must not duplicate items
	require.NoError(t, svc.RefreshAll(ctx))
	items, err = svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestNewsService_RefreshAll_AllFeedsFailing(t *testing.T) {
	server := newFeedServer(t)
	svc := newNewsService(t, []string{server.URL + "/missing.xml"}, server.Client())

	err := svc.RefreshAll(context.Background())
	require.ErrorIs(t, err, service.ErrFeedFetch)
}

// One broken feed must not fail the whole refresh.
func TestNewsService_RefreshAll_PartialFailure(t *testing.T) {
	server := newFeedServer(t)
	svc := newNewsService(t, []string{
		server.URL + "/missing.xml",
		server.URL + "/feed.xml",
	}, server.Client())
	ctx := context.Background()

	require.NoError(t, svc.RefreshAll(ctx))

	items, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
}

func TestNewsService_ReadArticle(t *testing.T) {
	server := newFeedServer(t)
	svc := newNewsService(t, []string{server.URL + "/feed.xml"}, server.Client())
	ctx := context.Background()

	require.NoError(t, svc.RefreshAll(ctx))
	items, err := svc.List(ctx, 0)
	require.NoError(t, err)

	var articleID int64
	for _, item := range items {
		if item.Title == "央行发布最新货币政策报告" {
			articleID = item.ID
		}
	}
	require.NotZero(t, articleID)

	content, err := svc.ReadArticle(ctx, articleID)
	require.NoError(t, err)
	require.Contains(t, content, "稳健的货币政策")
	require.NotContains(t, content, "trackVisitor")

	// Cached on second read
	item, err := svc.Get(ctx, articleID)
	require.NoError(t, err)
	require.NotNil(t, item.ReadableContent)

	again, err := svc.ReadArticle(ctx, articleID)
	require.NoError(t, err)
	require.Equal(t, content, again)
}

func TestNewsService_Get_NotFound(t *testing.T) {
	server := newFeedServer(t)
	svc := newNewsService(t, nil, server.Client())

	_, err := svc.Get(context.Background(), 424242)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestNewsService_FeedURLs_MergesStoredOverrides(t *testing.T) {
	db := testutil.NewTestDB(t)
	settingsRepo := repository.NewSettingsRepository(db)
	svc := service.NewNewsService(
		repository.NewNewsRepository(db),
		settingsRepo,
		network.NewClientFactoryForTest(http.DefaultClient),
		[]string{"https://a.example.com/rss"},
	)
	ctx := context.Background()

	require.NoError(t, settingsRepo.Set(ctx, "news.feeds", "https://b.example.com/rss, https://a.example.com/rss"))

	urls := svc.FeedURLs(ctx)
	require.Equal(t, []string{"https://a.example.com/rss", "https://b.example.com/rss"}, urls)
}
