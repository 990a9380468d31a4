package repository_test

import (
	"context"
	"testing"
	"time"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestNewsRepository_CreateOrUpdate_Upserts(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNewsRepository(db)
	ctx := context.Background()

	summary := "summary"
	item := model.NewsItem{
		Source:  "财经要闻",
		Title:   "原标题",
		URL:     "https://example.com/a",
		Summary: &summary,
	}
	require.NoError(t, repo.CreateOrUpdate(ctx, item))

	item.Title = "新标题"
	require.NoError(t, repo.CreateOrUpdate(ctx, item))

	items, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "新标题", items[0].Title)
}

// A re-served item without published_at must keep the stored timestamp.
func TestNewsRepository_CreateOrUpdate_PreservesPublishedAt(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNewsRepository(db)
	ctx := context.Background()

	published := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	item := model.NewsItem{
		Source:      "src",
		Title:       "t",
		URL:         "https://example.com/a",
		PublishedAt: &published,
	}
	require.NoError(t, repo.CreateOrUpdate(ctx, item))

	item.PublishedAt = nil
	require.NoError(t, repo.CreateOrUpdate(ctx, item))

	items, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].PublishedAt)
	require.Equal(t, published.Format(time.RFC3339), items[0].PublishedAt.UTC().Format(time.RFC3339))
}

func TestNewsRepository_UpdateReadableContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNewsRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.CreateOrUpdate(ctx, model.NewsItem{
		Source: "src", Title: "t", URL: "https://example.com/a",
	}))

	items, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, repo.UpdateReadableContent(ctx, items[0].ID, "<article>body</article>"))

	item, err := repo.GetByID(ctx, items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, item.ReadableContent)
	require.Equal(t, "<article>body</article>", *item.ReadableContent)
}

func TestNewsRepository_List_Limit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNewsRepository(db)
	ctx := context.Background()

	for _, url := range []string{"https://e.com/1", "https://e.com/2", "https://e.com/3"} {
		require.NoError(t, repo.CreateOrUpdate(ctx, model.NewsItem{
			Source: "src", Title: "t", URL: url,
		}))
	}

	items, err := repo.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
}
