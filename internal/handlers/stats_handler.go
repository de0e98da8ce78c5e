package handlers

import (
	"log/slog"
	"net/http"

	"study_cards/internal/service"
	"study_cards/internal/webutil"
)

type StatsHandler struct {
	service service.StatsService
	logger  *slog.Logger
}

func NewStatsHandler(s service.StatsService, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{service: s, logger: logger}
}

// GetStats は復習待ち件数・学習済み件数・カテゴリ別内訳を返す
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "GetStats")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, summary, logger)
}
