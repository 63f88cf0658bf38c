package api

import (
	"errors"
	"net/http"
	"strconv"

	"nusaquest/internal/model"
	"nusaquest/internal/service"
	"nusaquest/pkg/auth"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type rewardRoutes struct {
	rs         service.RewardServiceI
	uploadsDir string
}

func NewRewardRoutes(public, admin *gin.RouterGroup, rs service.RewardServiceI, a *auth.JWTAuth, uploadsDir string) {
	r := &rewardRoutes{rs: rs, uploadsDir: uploadsDir}

	public.GET("/quests/:id/rewards", r.ListQuestRewards)
	public.GET("/rewards/my-rewards", a.AuthMiddleware(), r.ListMyRewards)

	w := admin.Group("/rewards")
	{
		w.POST("", r.CreateReward)
		w.DELETE("/:id", r.DeleteReward)
	}
}

type RewardResponse struct {
	RewardID    int64   `json:"reward_id"`
	QuestID     int64   `json:"quest_id"`
	Type        string  `json:"type"`
	ContentText *string `json:"content_text,omitempty"`
	MediaURL    *string `json:"media_url,omitempty"`
	VoucherCode *string `json:"voucher_code,omitempty"`
}

type UserRewardResponse struct {
	RewardResponse
	QuestTitle string `json:"quest_title"`
}

func rewardResponse(rw *model.Reward) RewardResponse {
	return RewardResponse{
		RewardID:    rw.ID,
		QuestID:     rw.QuestID,
		Type:        string(rw.Type),
		ContentText: rw.ContentText,
		MediaURL:    rw.MediaURL,
		VoucherCode: rw.VoucherCode,
	}
}

func (r *rewardRoutes) ListQuestRewards(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	rewards, err := r.rs.ListByQuest(c.Request.Context(), questID)
	if err != nil {
		log.Error("failed to list quest rewards", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list rewards"})
		return
	}

	out := make([]RewardResponse, len(rewards))
	for i := range rewards {
		out[i] = rewardResponse(&rewards[i])
	}

	c.JSON(http.StatusOK, out)
}

func (r *rewardRoutes) ListMyRewards(c *gin.Context) {
	log := logger.Logger()

	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
		return
	}

	rewards, err := r.rs.ListMyRewards(c.Request.Context(), user.UserID)
	if err != nil {
		log.Error("failed to list user rewards", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load reward inventory"})
		return
	}

	out := make([]UserRewardResponse, len(rewards))
	for i, rw := range rewards {
		out[i] = UserRewardResponse{
			RewardResponse: rewardResponse(&rw.Reward),
			QuestTitle:     rw.QuestTitle,
		}
	}

	c.JSON(http.StatusOK, out)
}

func (r *rewardRoutes) CreateReward(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.PostForm("quest_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "quest_id is required"})
		return
	}

	reward := &model.Reward{
		QuestID: questID,
		Type:    model.RewardType(c.PostForm("type")),
	}

	if text := c.PostForm("content_text"); text != "" {
		reward.ContentText = &text
	}
	if code := c.PostForm("voucher_code"); code != "" {
		reward.VoucherCode = &code
	}

	if media, err := c.FormFile("media"); err == nil {
		name, err := saveUpload(c, media, r.uploadsDir)
		if err != nil {
			log.Error("failed to save reward media", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save media"})
			return
		}
		reward.MediaURL = &name
	}

	id, err := r.rs.CreateReward(c.Request.Context(), reward)
	if err != nil {
		log.Error("failed to create reward", zap.Error(err))
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "reward created",
		"reward_id": id,
	})
}

func (r *rewardRoutes) DeleteReward(c *gin.Context) {
	log := logger.Logger()

	rewardID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse reward id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid reward id"})
		return
	}

	if err := r.rs.DeleteReward(c.Request.Context(), rewardID); err != nil {
		log.Error("failed to delete reward", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reward deleted"})
}
