package webutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"study_cards/internal/model"
)

// 回答1件のリクエストに十分な大きさ
const maxBodyBytes = 1 << 20

// DecodeJSONBody はリクエストボディを dst にデコードする。未知のフィールドはエラー
func DecodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディが空です。", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "",
			fmt.Errorf("%w: %v", model.ErrInvalidInput, err))
	}
	return nil
}

// QueryInt はクエリパラメータを整数として読む。未指定なら def
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, model.NewAppError("INVALID_QUERY_PARAMETER",
			fmt.Sprintf("%sは0以上の整数で指定してください。", name), name, model.ErrInvalidInput)
	}
	return v, nil
}
