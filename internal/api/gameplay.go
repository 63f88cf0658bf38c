package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"nusaquest/internal/model"
	"nusaquest/internal/service"
	"nusaquest/pkg/auth"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type gameplayRoutes struct {
	ps service.ProgressionServiceI
	hs service.HintServiceI
}

func NewGameplayRoutes(handler *gin.RouterGroup, ps service.ProgressionServiceI, hs service.HintServiceI, a *auth.JWTAuth) {
	r := &gameplayRoutes{ps: ps, hs: hs}

	p := handler.Group("/passports")
	p.Use(a.AuthMiddleware())
	{
		p.GET("", r.ListPassports)
		p.POST("", r.StartQuest)
	}

	g := handler.Group("/gameplay")
	g.Use(a.AuthMiddleware())
	{
		g.GET("/status/:quest_id", r.GetQuestStatus)
		g.POST("/progress", r.SaveProgress)
		g.POST("/use-hint", r.UseHint)
	}

	handler.POST("/quests/:id/complete", a.AuthMiddleware(), r.CompleteQuest)
}

type PassportResponse struct {
	PassportID  int64      `json:"passport_id"`
	QuestID     int64      `json:"quest_id"`
	Status      string     `json:"status"`
	LastStage   int        `json:"last_stage"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type PassportSummaryResponse struct {
	PassportResponse
	QuestTitle   string  `json:"quest_title"`
	ThumbnailURL string  `json:"thumbnail_url"`
	TotalDist    float64 `json:"total_dist"`
}

func passportResponse(p *model.Passport) PassportResponse {
	return PassportResponse{
		PassportID:  p.ID,
		QuestID:     p.QuestID,
		Status:      string(p.Status),
		LastStage:   p.LastStage,
		StartedAt:   p.StartedAt,
		CompletedAt: p.CompletedAt,
	}
}

func (r *gameplayRoutes) ListPassports(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	passports, err := r.ps.ListPassports(c.Request.Context(), user.UserID)
	if err != nil {
		log.Error("failed to list passports", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list passports"})
		return
	}

	out := make([]PassportSummaryResponse, len(passports))
	for i, p := range passports {
		out[i] = PassportSummaryResponse{
			PassportResponse: passportResponse(&p.Passport),
			QuestTitle:       p.QuestTitle,
			ThumbnailURL:     p.ThumbnailURL,
			TotalDist:        p.TotalDist,
		}
	}

	c.JSON(http.StatusOK, out)
}

type StartQuestRequest struct {
	QuestID int64 `json:"quest_id" binding:"required"`
}

func (r *gameplayRoutes) StartQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var req StartQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "quest_id is required"})
		return
	}

	passport, err := r.ps.StartQuest(c.Request.Context(), user.UserID, req.QuestID)
	if err != nil {
		log.Error("failed to start quest", zap.Error(err))
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to start quest"})
		return
	}

	c.JSON(http.StatusOK, passportResponse(passport))
}

func (r *gameplayRoutes) GetQuestStatus(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("quest_id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest_id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest_id"})
		return
	}

	passport, err := r.ps.GetStatus(c.Request.Context(), user.UserID, questID)
	if err != nil {
		log.Error("failed to get quest status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get quest status"})
		return
	}

	if passport.Status == model.StatusNew {
		c.JSON(http.StatusOK, gin.H{
			"status":     string(model.StatusNew),
			"last_stage": 0,
		})
		return
	}

	c.JSON(http.StatusOK, passportResponse(passport))
}

type SaveProgressRequest struct {
	QuestID   int64 `json:"quest_id" binding:"required"`
	LastStage *int  `json:"last_stage" binding:"required"`
}

func (r *gameplayRoutes) SaveProgress(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var req SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing quest_id or last_stage"})
		return
	}

	err := r.ps.SaveProgress(c.Request.Context(), user.UserID, req.QuestID, *req.LastStage)
	if err != nil {
		log.Error("failed to save progress", zap.Error(err))
		switch {
		case errors.Is(err, service.ErrInvalidStage):
			c.JSON(http.StatusBadRequest, gin.H{"message": "last_stage must not be negative"})
		case errors.Is(err, service.ErrPassportNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "passport not found, start quest first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save progress"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "progress saved successfully",
		"last_stage": *req.LastStage,
	})
}

type UseHintRequest struct {
	HintID int64 `json:"hint_id" binding:"required"`
}

func (r *gameplayRoutes) UseHint(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	var req UseHintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "hint_id is required"})
		return
	}

	hintText, newXP, err := r.hs.PurchaseHint(c.Request.Context(), user.UserID, req.HintID)
	if err != nil {
		log.Error("failed to purchase hint",
			zap.Int64("user_id", user.UserID),
			zap.Int64("hint_id", req.HintID),
			zap.Error(err))
		switch {
		case errors.Is(err, service.ErrHintNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "hint not found"})
		case errors.Is(err, service.ErrInsufficientXP):
			c.JSON(http.StatusBadRequest, gin.H{"message": "not enough xp"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to purchase hint"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "hint purchased",
		"hint_text": hintText,
		"new_xp":    newXP,
	})
}

func (r *gameplayRoutes) CompleteQuest(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	xpEarned, err := r.ps.CompleteQuest(c.Request.Context(), user.UserID, questID)
	if err != nil {
		log.Error("failed to complete quest", zap.Error(err))
		if errors.Is(err, service.ErrPassportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "passport not found, start quest first"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to complete quest"})
		return
	}

	message := "quest completed"
	if xpEarned == 0 {
		message = "quest already completed"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   message,
		"xp_earned": xpEarned,
	})
}
