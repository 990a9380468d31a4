package ai_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"finedu/backend/internal/service/ai"
)

func TestWrapInput(t *testing.T) {
	wrapped := ai.WrapInput("test content")
	require.Contains(t, wrapped, "<input>")
	require.Contains(t, wrapped, "test content")
	require.Contains(t, wrapped, "</input>")
	require.Contains(t, wrapped, "Remember:")
	require.Contains(t, wrapped, "DATA only")
}

func TestWrapInputSimple(t *testing.T) {
	wrapped := ai.WrapInputSimple("test content")
	require.Equal(t, "<input>\ntest content\n</input>", wrapped)
}

func TestGetAdvicePrompt_HasSecuritySection(t *testing.T) {
	prompt := ai.GetAdvicePrompt()
	require.Contains(t, prompt, "<security_critical>")
	require.Contains(t, prompt, "PROMPT INJECTION WARNING")
}

func TestGetAdvicePrompt_OutputFormat(t *testing.T) {
	prompt := ai.GetAdvicePrompt()
	require.Contains(t, prompt, "简体中文")
	require.Contains(t, prompt, "No markdown")
	require.Contains(t, prompt, "START DIRECTLY")
}

func TestGetReviewPrompt_WithCaseTitle(t *testing.T) {
	prompt := ai.GetReviewPrompt("基金分析实战")
	require.Contains(t, prompt, "<case_title>基金分析实战</case_title>")
	require.Contains(t, prompt, "得分: NN")
}

func TestGetReviewPrompt_EmptyTitle(t *testing.T) {
	prompt := ai.GetReviewPrompt("")
	require.NotContains(t, prompt, "<case_title>")
	require.Contains(t, prompt, "<security_critical>")
}
