package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"nusaquest/internal/model"
	"nusaquest/internal/service"
	"nusaquest/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type stageRoutes struct {
	ss service.StageServiceI
}

func NewStageRoutes(public, admin *gin.RouterGroup, ss service.StageServiceI) {
	r := &stageRoutes{ss: ss}

	public.GET("/quests/:id/stages", r.ListQuestStages)
	public.GET("/stages/:id/hints", r.GetStageHints)

	admin.POST("/quests/:id/stages", r.CreateStage)
	s := admin.Group("/stages")
	{
		s.GET("/:id", r.GetStage)
		s.PUT("/:id", r.UpdateStage)
		s.DELETE("/:id", r.DeleteStage)
	}
}

type HintResponse struct {
	HintID   int64  `json:"hint_id"`
	StageID  int64  `json:"stage_id"`
	HintText string `json:"hint_text"`
	HintCost int    `json:"hint_cost"`
}

type StageResponse struct {
	StageID       int64          `json:"stage_id"`
	QuestID       int64          `json:"quest_id"`
	Sequence      int            `json:"stage_seq"`
	LocationName  string         `json:"location_name"`
	RiddleText    string         `json:"riddle_text"`
	Latitude      float64        `json:"latitude"`
	Longitude     float64        `json:"longitude"`
	Radius        int            `json:"radius"`
	CorrectAnswer *string        `json:"correct_answer,omitempty"`
	Hints         []HintResponse `json:"hints"`
}

func stageResponse(s *model.Stage) StageResponse {
	hints := make([]HintResponse, len(s.Hints))
	for i, h := range s.Hints {
		hints[i] = HintResponse{
			HintID:   h.ID,
			StageID:  h.StageID,
			HintText: h.Text,
			HintCost: h.Cost,
		}
	}

	return StageResponse{
		StageID:       s.ID,
		QuestID:       s.QuestID,
		Sequence:      s.Sequence,
		LocationName:  s.LocationName,
		RiddleText:    s.RiddleText,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		Radius:        s.Radius,
		CorrectAnswer: s.CorrectAnswer,
		Hints:         hints,
	}
}

func (r *stageRoutes) ListQuestStages(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	stages, err := r.ss.ListStagesByQuest(c.Request.Context(), questID)
	if err != nil {
		log.Error("failed to list stages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list stages"})
		return
	}

	out := make([]StageResponse, len(stages))
	for i, s := range stages {
		out[i] = stageResponse(s)
	}

	c.JSON(http.StatusOK, out)
}

func (r *stageRoutes) GetStageHints(c *gin.Context) {
	log := logger.Logger()

	stageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse stage id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid stage id"})
		return
	}

	hints, err := r.ss.GetStageHints(c.Request.Context(), stageID)
	if err != nil {
		log.Error("failed to get stage hints", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get stage hints"})
		return
	}

	out := make([]HintResponse, len(hints))
	for i, h := range hints {
		out[i] = HintResponse{
			HintID:   h.ID,
			StageID:  h.StageID,
			HintText: h.Text,
			HintCost: h.Cost,
		}
	}

	c.JSON(http.StatusOK, out)
}

func (r *stageRoutes) GetStage(c *gin.Context) {
	log := logger.Logger()

	stageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse stage id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid stage id"})
		return
	}

	stage, err := r.ss.GetStageByID(c.Request.Context(), stageID)
	if err != nil {
		if errors.Is(err, service.ErrStageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "stage not found"})
			return
		}
		log.Error("failed to get stage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get stage"})
		return
	}

	c.JSON(http.StatusOK, stageResponse(stage))
}

// stageFromForm reads the stage fields shared by create and update.
// Hints arrive as a JSON-encoded string field so mobile admin clients
// can send them inside a multipart form. Coordinates must be present
// in the form; zero is a valid value for either axis.
func stageFromForm(c *gin.Context) (*model.Stage, []model.HintDefinition, error) {
	latitude, err := strconv.ParseFloat(c.PostForm("lat"), 64)
	if err != nil {
		return nil, nil, fmt.Errorf("lat is required")
	}
	longitude, err := strconv.ParseFloat(c.PostForm("lon"), 64)
	if err != nil {
		return nil, nil, fmt.Errorf("lon is required")
	}

	sequence, _ := strconv.Atoi(c.PostForm("sequence"))
	radius, _ := strconv.Atoi(c.PostForm("radius"))

	var correctAnswer *string
	if answer := c.PostForm("correct_answer"); answer != "" {
		correctAnswer = &answer
	}

	stage := &model.Stage{
		Sequence:      sequence,
		LocationName:  c.PostForm("location_name"),
		RiddleText:    c.PostForm("riddle_text"),
		Latitude:      latitude,
		Longitude:     longitude,
		Radius:        radius,
		CorrectAnswer: correctAnswer,
	}

	var hints []model.HintDefinition
	if raw := c.PostForm("hints"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &hints); err != nil {
			hints = nil
		}
	}

	return stage, hints, nil
}

func (r *stageRoutes) CreateStage(c *gin.Context) {
	log := logger.Logger()

	questID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse quest id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid quest id"})
		return
	}

	stage, hints, err := stageFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	stage.QuestID = questID

	id, err := r.ss.CreateStage(c.Request.Context(), stage, hints)
	if err != nil {
		log.Error("failed to create stage", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "stage and hints saved",
		"stage_id": id,
	})
}

func (r *stageRoutes) UpdateStage(c *gin.Context) {
	log := logger.Logger()

	stageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse stage id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid stage id"})
		return
	}

	stage, hints, err := stageFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	stage.ID = stageID

	if err := r.ss.UpdateStage(c.Request.Context(), stage, hints); err != nil {
		if errors.Is(err, service.ErrStageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "stage not found"})
			return
		}
		log.Error("failed to update stage", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stage updated"})
}

func (r *stageRoutes) DeleteStage(c *gin.Context) {
	log := logger.Logger()

	stageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse stage id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid stage id"})
		return
	}

	if err := r.ss.DeleteStage(c.Request.Context(), stageID); err != nil {
		log.Error("failed to delete stage", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete stage"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stage deleted"})
}
