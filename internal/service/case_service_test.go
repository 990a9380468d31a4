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

func newCaseService(t *testing.T) (service.CaseService, int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	svc := service.NewCaseService(repository.NewSubmissionRepository(db))
	userID := testutil.SeedUser(t, db, model.User{})
	return svc, userID
}

func TestCaseService_ListCases(t *testing.T) {
	svc, _ := newCaseService(t)

	cases := svc.ListCases()
	require.Len(t, cases, 4)
	require.Equal(t, "1", cases[0].ID)
	require.Contains(t, cases[0].Title, "基金分析实战")
	require.Equal(t, "初级", cases[0].Level)
	require.NotEmpty(t, cases[0].Exercise)
	require.NotEmpty(t, cases[0].ReferenceAnswer)
}

func TestCaseService_GetCase(t *testing.T) {
	svc, _ := newCaseService(t)

	c, err := svc.GetCase("2")
	require.NoError(t, err)
	require.Contains(t, c.Title, "稳健型投资组合")
	require.NotEmpty(t, c.Tools)

	_, err = svc.GetCase("99")
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestCaseService_SubmitExercise(t *testing.T) {
	svc, userID := newCaseService(t)
	ctx := context.Background()

	_, err := svc.SubmitExercise(ctx, userID, "99", nil, "答案")
	require.ErrorIs(t, err, service.ErrNotFound)

	_, err = svc.SubmitExercise(ctx, userID, "1", nil, "   ")
	require.ErrorIs(t, err, service.ErrInvalid)

	// Markup is stripped before storing
	sub, err := svc.SubmitExercise(ctx, userID, "1", nil, `<script>alert(1)</script>该基金近三年收益率为 45%`)
	require.NoError(t, err)
	require.Equal(t, "该基金近三年收益率为 45%", sub.Answer)
	require.Equal(t, "1", sub.CaseID)

	// A sanitized-to-empty answer is rejected
	_, err = svc.SubmitExercise(ctx, userID, "1", nil, `<script>alert(1)</script>`)
	require.ErrorIs(t, err, service.ErrInvalid)
}

func TestCaseService_ListSubmissions(t *testing.T) {
	svc, userID := newCaseService(t)
	ctx := context.Background()

	q1 := "q1"
	_, err := svc.SubmitExercise(ctx, userID, "1", &q1, "第一题答案")
	require.NoError(t, err)
	_, err = svc.SubmitExercise(ctx, userID, "2", nil, "案例二答案")
	require.NoError(t, err)

	all, err := svc.ListSubmissions(ctx, userID, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	caseID := "1"
	filtered, err := svc.ListSubmissions(ctx, userID, &caseID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.NotNil(t, filtered[0].QuestionID)
	require.Equal(t, "q1", *filtered[0].QuestionID)

	unknown := "99"
	_, err = svc.ListSubmissions(ctx, userID, &unknown)
	require.ErrorIs(t, err, service.ErrNotFound)
}
