package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/moviebazar/account-service/internal/application"
	"github.com/moviebazar/account-service/internal/domain/progression"
	"github.com/moviebazar/account-service/internal/interface/middleware"
	"github.com/moviebazar/account-service/pkg/response"
	"github.com/moviebazar/account-service/pkg/validation"
)

// GamificationHandler serves the progression endpoints: activity recording,
// avatar changes, level progress and the leaderboard.
type GamificationHandler struct {
	Svc    *application.ProgressionService
	Logger *logrus.Logger
}

func NewGamificationHandler(svc *application.ProgressionService, logger *logrus.Logger) *GamificationHandler {
	return &GamificationHandler{Svc: svc, Logger: logger}
}

type activityRequest struct {
	Action       string `json:"action" binding:"required,oneof=view reaction comment share download favorite"`
	MovieID      string `json:"movieId" binding:"required"`
	ReactionType string `json:"reactionType"`
	Platform     string `json:"platform"`
	Quality      string `json:"quality"`
	Text         string `json:"text"`
}

type changeAvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// RecordActivity POST /api/activity
//
// One endpoint admits every activity kind so the admission rules stay in a
// single place. A capped or duplicate action returns 200 with zero points
// and accepted=false.
func (h *GamificationHandler) RecordActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	res, err := h.Svc.RecordAction(uid, application.ActionKind(req.Action), application.ActionPayload{
		MovieID:      req.MovieID,
		ReactionType: req.ReactionType,
		Platform:     req.Platform,
		Quality:      req.Quality,
		Text:         req.Text,
	})
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("action", req.Action).Error("record activity failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to record activity", nil)
		return
	}

	meta := gin.H{}
	if req.Action == string(application.ActionView) {
		meta["viewsLeft"] = res.ViewsLeft
	}
	if req.Action == string(application.ActionFavorite) {
		meta["favorited"] = res.Favorited
	}
	if !res.Accepted {
		meta["reason"] = res.Reason
	}

	msg := "activity recorded"
	if !res.Accepted {
		msg = "activity not counted"
	}
	response.Success(c, http.StatusOK, gin.H{
		"pointsEarned": res.Points,
		"accepted":     res.Accepted,
		"user":         userView(res.User),
	}, msg, meta)
}

// ChangeAvatar PUT /api/avatar
func (h *GamificationHandler) ChangeAvatar(c *gin.Context) {
	var req changeAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	uid := c.GetString(middleware.CtxUserIDKey)
	u, pts, err := h.Svc.ChangeAvatar(uid, req.Avatar)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrAvatarNotFound):
			response.Error[any](c, http.StatusNotFound, "unknown avatar", nil)
		case errors.Is(err, application.ErrAvatarLocked):
			response.Error[any](c, http.StatusForbidden, "avatar not unlocked yet", nil)
		default:
			h.Logger.WithError(err).Error("change avatar failed")
			response.Error[any](c, http.StatusInternalServerError, "failed to change avatar", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"avatar":       u.CurrentAvatar,
		"points":       u.Points,
		"pointsEarned": pts,
	}, "avatar updated", nil)
}

// GetProgress GET /api/progress
func (h *GamificationHandler) GetProgress(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	view, err := h.Svc.Progress(uid)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	response.Success(c, http.StatusOK, view, "level progress", nil)
}

// Levels GET /api/levels
func (h *GamificationHandler) Levels(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"levels": progression.Levels}, "level table", nil)
}

// Leaderboard GET /api/leaderboard?limit=
func (h *GamificationHandler) Leaderboard(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	entries, err := h.Svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		h.Logger.WithError(err).Error("leaderboard query failed")
		response.Error[any](c, http.StatusInternalServerError, "failed to fetch leaderboard", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"leaderboard": entries,
		"total":       len(entries),
	}, "leaderboard", nil)
}
