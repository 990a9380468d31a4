package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/model"
	"finedu/backend/internal/repository"
	"finedu/backend/internal/repository/testutil"
	"finedu/backend/internal/service"
)

func newNoteService(t *testing.T) (service.NoteService, int64, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := service.NewNoteService(repository.NewNoteRepository(db))
	userID := testutil.SeedUser(t, db, model.User{})
	otherID := testutil.SeedUser(t, db, model.User{})
	return svc, userID, otherID
}

func TestNoteService_Save(t *testing.T) {
	svc, userID, _ := newNoteService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, userID, "", nil, "内容")
	require.ErrorIs(t, err, service.ErrInvalid)

	_, err = svc.Save(ctx, userID, "基金投资入门", nil, "  ")
	require.ErrorIs(t, err, service.ErrInvalid)

	// Blank lesson names are normalized to nil
	blank := "   "
	note, err := svc.Save(ctx, userID, "基金投资入门", &blank, "货币基金风险最低")
	require.NoError(t, err)
	require.Nil(t, note.LessonName)
	require.Equal(t, "货币基金风险最低", note.NoteContent)

	lesson := "第一课"
	note, err = svc.Save(ctx, userID, "基金投资入门", &lesson, `<b>重点</b>: 分散投资`)
	require.NoError(t, err)
	require.NotNil(t, note.LessonName)
	require.Equal(t, "重点: 分散投资", note.NoteContent)
}

func TestNoteService_List(t *testing.T) {
	svc, userID, otherID := newNoteService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, userID, "m1", nil, "笔记一")
	require.NoError(t, err)
	_, err = svc.Save(ctx, userID, "m2", nil, "笔记二")
	require.NoError(t, err)
	_, err = svc.Save(ctx, otherID, "m1", nil, "别人的笔记")
	require.NoError(t, err)

	all, err := svc.List(ctx, userID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	moduleName := "m1"
	filtered, err := svc.List(ctx, userID, &moduleName)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "笔记一", filtered[0].NoteContent)
}

func TestNoteService_Delete(t *testing.T) {
	svc, userID, otherID := newNoteService(t)
	ctx := context.Background()

	note, err := svc.Save(ctx, userID, "m1", nil, "要删除的笔记")
	require.NoError(t, err)

	// Someone else's note looks like it does not exist
	require.ErrorIs(t, svc.Delete(ctx, otherID, note.ID), service.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, userID, note.ID))
	require.ErrorIs(t, svc.Delete(ctx, userID, note.ID), service.ErrNotFound)
}
