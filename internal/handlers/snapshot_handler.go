package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"eduboard/internal/services"
)

type SnapshotHandler struct{ svc services.SnapshotService }

func NewSnapshotHandler(svc services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{svc: svc}
}

// Export сохраняет полный срез состояния на диск
func (h *SnapshotHandler) Export(c *gin.Context) {
	name, err := h.svc.Export()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": name})
}

type importReq struct {
	Snapshot string `json:"snapshot" binding:"required"`
}

// Import восстанавливает состояние из сохраненного снапшота
func (h *SnapshotHandler) Import(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Import(req.Snapshot); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// List возвращает имена сохраненных снапшотов
func (h *SnapshotHandler) List(c *gin.Context) {
	names, err := h.svc.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": names})
}
