package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/service"
	"study_cards/internal/webutil"

	"github.com/google/uuid"
)

type StudyHandler struct {
	scheduler  service.SchedulerService
	dueSet     service.DueSetService
	recommend  service.RecommendationService
	sessions   service.SessionService
	retryLimit int
	logger     *slog.Logger
}

func NewStudyHandler(
	scheduler service.SchedulerService,
	dueSet service.DueSetService,
	recommend service.RecommendationService,
	sessions service.SessionService,
	retryLimit int,
	logger *slog.Logger,
) *StudyHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyHandler{
		scheduler:  scheduler,
		dueSet:     dueSet,
		recommend:  recommend,
		sessions:   sessions,
		retryLimit: retryLimit,
		logger:     logger,
	}
}

// requestUser はコンテキストのユーザーIDとハンドラ用ロガーを返す
func requestUser(r *http.Request, base *slog.Logger, handler string) (uuid.UUID, *slog.Logger, error) {
	logger := base.With(slog.String("handler", handler))
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		return uuid.Nil, logger, err
	}
	return userID, logger.With(slog.String("user_id", userID.String())), nil
}

// SubmitAnswer は回答1件を記録し、次回の復習予定を返す
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "SubmitAnswer")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	var req model.SubmitAnswerRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}
	if err := webutil.ValidateStruct(req); err != nil {
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, err)
		return
	}

	// バリデーション済みなのでパースは失敗しない
	ref := model.ItemRef{Kind: model.ItemKind(req.ItemKind), ID: uuid.MustParse(req.ItemID)}
	correct := *req.IsCorrect

	session, err := h.sessions.EnsureActive(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	outcome, err := service.RetryOnConflict(r.Context(), h.retryLimit, func(ctx context.Context) (*model.AnswerOutcome, error) {
		return h.scheduler.SubmitAnswer(ctx, userID, ref, &session.ID, correct)
	})
	if err != nil {
		logger.Warn("Failed to submit answer", slog.String("item", ref.String()), slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	rec := outcome.Record
	logger.Info("Answer submitted",
		slog.String("item", ref.String()),
		slog.Bool("correct", correct),
		slog.Int("repetition_count", rec.RepetitionCount))
	webutil.RespondWithJSON(w, http.StatusOK, &model.AnswerResultResponse{
		ItemID:          ref.ID,
		ItemKind:        ref.Kind,
		IsCorrect:       correct,
		NextReviewDate:  model.FormatDate(rec.NextReview()),
		EaseFactor:      rec.EaseFactor,
		IntervalDays:    rec.IntervalDays,
		RepetitionCount: rec.RepetitionCount,
		Mastered:        outcome.Mastered,
	}, logger)
}

// GetQueue は今日の学習キューを返す
func (h *StudyHandler) GetQueue(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "GetQueue")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := webutil.QueryInt(r, "limit", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	category := r.URL.Query().Get("category")

	items, err := h.dueSet.FindDueBatch(r.Context(), userID, category, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	resp := make([]*model.StudyItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toStudyItemResponse(it))
	}
	logger.Info("Study queue built", slog.Int("count", len(resp)), slog.String("category", category))
	webutil.RespondWithJSON(w, http.StatusOK, resp, logger)
}

func toStudyItemResponse(s *model.StudyItem) *model.StudyItemResponse {
	ref := s.Item.Ref()
	resp := &model.StudyItemResponse{
		ItemID:       ref.ID,
		ItemKind:     ref.Kind,
		CategoryCode: s.Item.CategoryCode(),
		Prompt:       s.Item.Prompt(),
		EaseFactor:   s.Ease(),
		IsNew:        s.Record == nil,
	}
	if s.Record != nil {
		resp.NextReviewDate = model.FormatDate(s.Record.NextReview())
	}
	return resp
}

// GetRecommendations は優先度順のおすすめアイテムを返す
func (h *StudyHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, logger, err := requestUser(r, h.logger, "GetRecommendations")
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	limit, err := webutil.QueryInt(r, "limit", 0)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	recs, err := h.recommend.Recommend(r.Context(), userID, limit)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	if recs == nil {
		recs = []*model.RecommendationResponse{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, recs, logger)
}
