package handlers

import (
	"log/slog"
	"net/http"

	"study_cards/internal/model"
	"study_cards/internal/service"
	"study_cards/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type SessionHandler struct {
	service service.SessionService
	logger  *slog.Logger
}

func NewSessionHandler(s service.SessionService, logger *slog.Logger) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{service: s, logger: logger}
}

func (h *SessionHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "GetCurrentSession")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	session, err := h.service.Current(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, model.NewSessionResponse(session), logger)
}

func (h *SessionHandler) EndCurrent(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "EndCurrentSession")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	session, err := h.service.End(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	logger.Info("Session ended", slog.String("session_id", session.ID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, model.NewSessionResponse(session), logger)
}

// ListSessions は新しい順のセッション履歴を返す
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "ListSessions")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := webutil.QueryInt(r, "limit", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	offset, err := webutil.QueryInt(r, "offset", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessions, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	resp := make([]*model.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, model.NewSessionResponse(s))
	}
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "GetSession")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	sessionID, err := uuid.Parse(chi.URLParam(r, "session_id"))
	if err != nil {
		webutil.HandleError(w, logger, model.NewAppError("INVALID_PATH_PARAMETER", "セッションIDの形式が正しくありません。", "session_id", model.ErrInvalidInput))
		return
	}

	stats, err := h.service.SessionStats(r.Context(), userID, sessionID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	webutil.RespondWithJSON(w, http.StatusOK, stats, logger)
}
