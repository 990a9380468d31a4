package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"finedu/backend/internal/handler"
	marketmock "finedu/backend/internal/market/mock"
)

func newMarketEcho(t *testing.T) (*echo.Echo, *marketmock.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := marketmock.NewMockClient(ctrl)

	e := echo.New()
	handler.NewMarketHandler(client).RegisterRoutes(e.Group("/api"))
	return e, client
}

// The keyword filter is optional and forwarded as-is to the upstream call.
func TestMarketHandler_SearchHotTopic(t *testing.T) {
	e, client := newMarketEcho(t)

	client.EXPECT().SearchHotTopic(gomock.Any(), "").Return(json.RawMessage(`{"topics":[]}`), nil)
	client.EXPECT().SearchHotTopic(gomock.Any(), "新能源").Return(json.RawMessage(`{"topics":["新能源"]}`), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/market/hot-topics", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":{"topics":[]}}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/market/hot-topics?keyword=新能源", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":{"topics":["新能源"]}}`, rec.Body.String())
}

func TestMarketHandler_StrategySearch_RequiresKeyword(t *testing.T) {
	e, _ := newMarketEcho(t)

	req := httptest.NewRequest(http.MethodGet, "/api/market/strategies/search", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
