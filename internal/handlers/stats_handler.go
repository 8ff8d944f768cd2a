package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"eduboard/internal/services"
)

type StatsHandler struct{ svc services.StatsService }

func NewStatsHandler(svc services.StatsService) *StatsHandler { return &StatsHandler{svc: svc} }

// StudentStats возвращает сводку по одному ученику
func (h *StatsHandler) StudentStats(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student id"})
		return
	}

	report, err := h.svc.StudentStats(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": report})
}

// GroupStats возвращает сводку по группе
func (h *StatsHandler) GroupStats(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id"})
		return
	}

	gs, err := h.svc.GroupStats(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": gs})
}

// Overview возвращает сводку по классу для главной панели
func (h *StatsHandler) Overview(c *gin.Context) {
	ov, err := h.svc.ClassOverview()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"overview": ov})
}

// CompareGroups сравнивает выбранные группы.
// Идентификаторы передаются через запятую: ?groups=1,2,3
func (h *StatsHandler) CompareGroups(c *gin.Context) {
	raw := c.Query("groups")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "groups parameter is required"})
		return
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group id: " + part})
			return
		}
		ids = append(ids, id)
	}

	cmp, err := h.svc.CompareGroups(ids)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"comparison": cmp})
}
