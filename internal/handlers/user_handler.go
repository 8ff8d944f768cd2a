package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"eduboard/internal/models"
	"eduboard/internal/services"
)

type UserHandler struct {
	svc   services.UserService
	stats services.StatsService
}

func NewUserHandler(svc services.UserService, stats services.StatsService) *UserHandler {
	return &UserHandler{svc: svc, stats: stats}
}

type createUserReq struct {
	Role     models.UserRole `json:"role" binding:"required"`
	Username string          `json:"username" binding:"required"`
	Password string          `json:"password" binding:"required"`
	Name     string          `json:"name"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.svc.CreateUser(req.Role, req.Username, req.Password, req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// ListUsers возвращает пользователей в области видимости текущей роли.
// Параметр group сужает список до состава одной группы.
func (h *UserHandler) ListUsers(c *gin.Context) {
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

	users, err := h.stats.VisibleUsers(*actor, selectedGroupID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	u, err := h.svc.GetUser(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

type updateUserReq struct {
	Role     *models.UserRole `json:"role"`
	Username *string          `json:"username"`
	Password *string          `json:"password"`
	Name     *string          `json:"name"`
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	u, err := h.svc.GetUser(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Password != nil {
		u.Password = *req.Password
	}
	if req.Name != nil {
		u.Name = *req.Name
	}

	if err := h.svc.UpdateUser(u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.svc.DeleteUser(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// pathID разбирает числовой идентификатор из параметра пути
func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// optionalIDQuery разбирает необязательный числовой query-параметр
func optionalIDQuery(c *gin.Context, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
