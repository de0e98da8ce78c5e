package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"study_cards/internal/handlers"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	svc_mocks "study_cards/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testServices はルーター全体に渡すモック一式
type testServices struct {
	scheduler *svc_mocks.SchedulerService
	dueSet    *svc_mocks.DueSetService
	recommend *svc_mocks.RecommendationService
	sessions  *svc_mocks.SessionService
	stats     *svc_mocks.StatsService
}

const testRetryLimit = 3

// newTestServer は本番と同じルーティングでモックサービスを組み込んだサーバーを起動する
func newTestServer(t *testing.T) (*httptest.Server, *testServices) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svcs := &testServices{
		scheduler: svc_mocks.NewSchedulerService(t),
		dueSet:    svc_mocks.NewDueSetService(t),
		recommend: svc_mocks.NewRecommendationService(t),
		sessions:  svc_mocks.NewSessionService(t),
		stats:     svc_mocks.NewStatsService(t),
	}

	r := chi.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))
	handlers.Mount(r,
		handlers.NewStudyHandler(svcs.scheduler, svcs.dueSet, svcs.recommend, svcs.sessions, testRetryLimit, logger),
		handlers.NewStatsHandler(svcs.stats, logger),
		handlers.NewSessionHandler(svcs.sessions, logger),
	)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server, svcs
}

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method string
	Path   string
	Body   interface{}
	UserID uuid.UUID // uuid.Nil ならヘッダーを付けない
}

// sendRequest はリクエストを送信し、ステータスコードを検証してボディを返す
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBody io.Reader
	if details.Body != nil {
		if s, ok := details.Body.(string); ok {
			reqBody = strings.NewReader(s)
		} else {
			data, err := json.Marshal(details.Body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(data)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBody)
	require.NoError(t, err)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if details.UserID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, details.UserID.String())
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, expectedCode, resp.StatusCode, "body: %s", string(body))
	return body
}

// decodeError はエラーレスポンスを読み取る
func decodeError(t *testing.T, body []byte) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp), "body: %s", string(body))
	return resp.Error
}
