package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduboard/internal/services"
)

type ScoreHandler struct{ svc services.ScoreService }

func NewScoreHandler(svc services.ScoreService) *ScoreHandler { return &ScoreHandler{svc: svc} }

type setScoreReq struct {
	StudentID int64 `json:"student_id" binding:"required"`
	TaskID    int64 `json:"task_id" binding:"required"`
	Value     int   `json:"value"`
}

// SetScore записывает балл в клетку (ученик, задание)
func (h *ScoreHandler) SetScore(c *gin.Context) {
	var req setScoreReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := h.svc.SetScore(req.StudentID, req.TaskID, req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"score": score})
}

// ListScores возвращает всю таблицу баллов для панели
func (h *ScoreHandler) ListScores(c *gin.Context) {
	scores, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

func (h *ScoreHandler) DeleteScore(c *gin.Context) {
	studentID, err := pathID(c, "student_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}
	taskID, err := pathID(c, "task_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := h.svc.DeleteScore(studentID, taskID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
