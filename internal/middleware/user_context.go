package middleware

import (
	"context"
	"net/http"

	"study_cards/internal/model"
	"study_cards/internal/webutil"

	"github.com/google/uuid"
)

// UserIDHeader は前段の認証ゲートウェイが設定するユーザーIDヘッダー
const UserIDHeader = "X-User-ID"

// UserContextMiddleware は X-User-ID ヘッダーのUUIDをコンテキストに設定する。
// 認証は前段で済んでいる前提で、ユーザーの存在確認はしない
func UserContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			logger.Warn("User context missing", "header", UserIDHeader)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "X-User-ID ヘッダーが必要です。", "", model.ErrUnauthorized))
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			logger.Warn("Invalid user id header", "value", raw)
			webutil.HandleError(w, logger, model.NewAppError("UNAUTHORIZED", "X-User-ID ヘッダーの形式が正しくありません。", "", model.ErrUnauthorized))
			return
		}

		ctx := WithUserID(r.Context(), userID)
		ctx = WithLogger(ctx, logger.With("user_id", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, model.UserIDKey, userID)
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(model.UserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, model.NewAppError("UNAUTHORIZED", "コンテキストからユーザー情報を取得できませんでした。", "", model.ErrUnauthorized)
	}
	return userID, nil
}
