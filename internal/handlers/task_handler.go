package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eduboard/internal/models"
	"eduboard/internal/services"
)

type TaskHandler struct{ svc services.TaskService }

func NewTaskHandler(svc services.TaskService) *TaskHandler { return &TaskHandler{svc: svc} }

type createTaskReq struct {
	Weekday  string `json:"weekday" binding:"required"`
	Title    string `json:"title" binding:"required"`
	MaxScore int    `json:"max_score"`
	Deadline string `json:"deadline"`
	Date     string `json:"date"` // RFC 3339, необязательно
	GroupID  *int64 `json:"group_id"`
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	userIDVal, _ := c.Get("user_id")
	createdBy, ok := userIDVal.(int64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user id"})
		return
	}

	var req createTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format"})
			return
		}
		date = parsed
	}

	t, err := h.svc.CreateTask(createdBy, services.NewTask{
		Weekday:  models.Weekday(req.Weekday),
		Title:    req.Title,
		MaxScore: req.MaxScore,
		Deadline: req.Deadline,
		Date:     date,
		GroupID:  req.GroupID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": t})
}

// Board возвращает недельную доску, отфильтрованную для текущей роли.
// Параметр group задает выбранную группу.
func (h *TaskHandler) Board(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	selectedGroupID, err := optionalIDQuery(c, "group")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	board, err := h.svc.VisibleBoard(*actor, selectedGroupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": board})
}

type updateTaskReq struct {
	Title    *string `json:"title"`
	MaxScore *int    `json:"max_score"`
	Deadline *string `json:"deadline"`
	GroupID  *int64  `json:"group_id"`
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	t, err := h.svc.GetTask(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	var req updateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.MaxScore != nil {
		t.MaxScore = *req.MaxScore
	}
	if req.Deadline != nil {
		t.Deadline = *req.Deadline
	}
	if req.GroupID != nil {
		t.GroupID = req.GroupID
	}

	if err := h.svc.UpdateTask(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": t})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}
	if err := h.svc.DeleteTask(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
