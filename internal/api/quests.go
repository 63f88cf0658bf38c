package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"nusaquest/internal/model"
	"nusaquest/internal/service"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type questRoutes struct {
	qs         service.QuestServiceI
	uploadsDir string
}

func NewQuestRoutes(public, admin *gin.RouterGroup, qs service.QuestServiceI, uploadsDir string) {
	r := &questRoutes{qs: qs, uploadsDir: uploadsDir}

	public.GET("/quests", r.ListQuests)
	public.GET("/quests/:id", r.GetQuest)

	q := admin.Group("/quests")
	{
		q.POST("", r.CreateQuest)
		q.PUT("/:id", r.UpdateQuest)
		q.DELETE("/:id", r.DeleteQuest)
	}
}

type QuestResponse struct {
	QuestID            int64     `json:"quest_id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	Highlights         []string  `json:"highlights"`
	Category           string    `json:"category"`
	Difficulty         string    `json:"difficulty"`
	ThumbnailURL       string    `json:"thumbnail_url"`
	StampURL           *string   `json:"stamp_url,omitempty"`
	StartLocationName  string    `json:"start_location_name"`
	FinishLocationName string    `json:"finish_location_name"`
	EstDuration        int       `json:"est_duration"`
	TotalDist          float64   `json:"total_dist"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	RewardXP           int       `json:"reward_xp"`
	CreatedAt          time.Time `json:"created_at"`
}

func questResponse(q *model.Quest) QuestResponse {
	highlights := q.Highlights
	if highlights == nil {
		highlights = []string{}
	}

	return QuestResponse{
		QuestID:            q.ID,
		Title:              q.Title,
		Description:        q.Description,
		Highlights:         highlights,
		Category:           string(q.Category),
		Difficulty:         string(q.Difficulty),
		ThumbnailURL:       q.ThumbnailURL,
		StampURL:           q.StampURL,
		StartLocationName:  q.StartLocationName,
		FinishLocationName: q.FinishLocationName,
		EstDuration:        q.EstDuration,
		TotalDist:          q.TotalDist,
		Latitude:           q.Latitude,
		Longitude:          q.Longitude,
		RewardXP:           q.RewardXP,
		CreatedAt:          q.CreatedAt,
	}
}

func (r *questRoutes) ListQuests(c *gin.Context) {
	log := logger.Logger()

	quests, err := r.qs.ListQuests(c.Request.Context())
	if err != nil {
		log.Error("failed to list quests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list quests"})
		return
	}

	out := make([]QuestResponse, len(quests))
	for i, q := range quests {
		out[i] = questResponse(q)
	}

	c.JSON(http.StatusOK, out)
}

func (r *questRoutes) GetQuest(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	quest, err := r.qs.GetQuestByID(c.Request.Context(), questID)
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		log.Error("failed to get quest", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get quest"})
		return
	}

	c.JSON(http.StatusOK, questResponse(quest))
}

// questFromForm reads the quest fields shared by create and update from
// a multipart form.
func questFromForm(c *gin.Context) *model.Quest {
	estDuration, _ := strconv.Atoi(c.PostForm("est_duration"))
	totalDist, _ := strconv.ParseFloat(c.PostForm("total_dist"), 64)
	latitude, _ := strconv.ParseFloat(c.PostForm("latitude"), 64)
	longitude, _ := strconv.ParseFloat(c.PostForm("longitude"), 64)
	rewardXP, _ := strconv.Atoi(c.PostForm("reward_xp"))

	return &model.Quest{
		Title:              c.PostForm("title"),
		Description:        c.PostForm("description"),
		Highlights:         c.PostFormArray("highlights"),
		Category:           model.QuestCategory(c.PostForm("category")),
		Difficulty:         model.QuestDifficulty(c.PostForm("difficulty")),
		StartLocationName:  c.PostForm("start_location"),
		FinishLocationName: c.PostForm("finish_location"),
		EstDuration:        estDuration,
		TotalDist:          totalDist,
		Latitude:           latitude,
		Longitude:          longitude,
		RewardXP:           rewardXP,
	}
}

func (r *questRoutes) CreateQuest(c *gin.Context) {
	log := logger.Logger()

	quest := questFromForm(c)

	thumbnail, err := c.FormFile("thumbnail")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "thumbnail is required"})
		return
	}

	thumbnailName, err := saveUpload(c, thumbnail, r.uploadsDir)
	if err != nil {
		log.Error("failed to save thumbnail", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save thumbnail"})
		return
	}
	quest.ThumbnailURL = thumbnailName

	if stamp, err := c.FormFile("stamp"); err == nil {
		stampName, err := saveUpload(c, stamp, r.uploadsDir)
		if err != nil {
			log.Error("failed to save stamp", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save stamp"})
			return
		}
		quest.StampURL = &stampName
	}

	id, err := r.qs.CreateQuest(c.Request.Context(), quest)
	if err != nil {
		log.Error("failed to create quest", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "quest created",
		"data": gin.H{
			"quest_id": id,
			"title":    quest.Title,
		},
	})
}

func (r *questRoutes) UpdateQuest(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	existing, err := r.qs.GetQuestByID(c.Request.Context(), questID)
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		log.Error("failed to get quest", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get quest"})
		return
	}

	quest := questFromForm(c)
	quest.ID = questID
	quest.ThumbnailURL = existing.ThumbnailURL
	quest.StampURL = existing.StampURL

	if thumbnail, err := c.FormFile("thumbnail"); err == nil {
		name, err := saveUpload(c, thumbnail, r.uploadsDir)
		if err != nil {
			log.Error("failed to save thumbnail", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save thumbnail"})
			return
		}
		removeUpload(r.uploadsDir, existing.ThumbnailURL)
		quest.ThumbnailURL = name
	}

	if stamp, err := c.FormFile("stamp"); err == nil {
		name, err := saveUpload(c, stamp, r.uploadsDir)
		if err != nil {
			log.Error("failed to save stamp", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to save stamp"})
			return
		}
		if existing.StampURL != nil {
			removeUpload(r.uploadsDir, *existing.StampURL)
		}
		quest.StampURL = &name
	}

	if err := r.qs.UpdateQuest(c.Request.Context(), quest); err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		log.Error("failed to update quest", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "quest updated"})
}

func (r *questRoutes) DeleteQuest(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	deleted, err := r.qs.DeleteQuest(c.Request.Context(), questID)
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "quest not found"})
			return
		}
		log.Error("failed to delete quest", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete quest"})
		return
	}

	removeUpload(r.uploadsDir, deleted.ThumbnailURL)
	if deleted.StampURL != nil {
		removeUpload(r.uploadsDir, *deleted.StampURL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "quest deleted"})
}
