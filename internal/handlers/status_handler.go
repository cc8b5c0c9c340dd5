package handlers

import (
	"net/http"

	"collabra_backend/internal/middleware"
	"collabra_backend/internal/models"
	"collabra_backend/internal/services"
	"collabra_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// StatusHandler serves the aggregated verification progress view and the
// admin account-status transitions.
type StatusHandler struct {
	*BaseHandler
	statusService services.StatusService
	userService   services.UserService
}

func NewStatusHandler(base *BaseHandler, statusService services.StatusService, userService services.UserService) *StatusHandler {
	return &StatusHandler{
		BaseHandler:   base,
		statusService: statusService,
		userService:   userService,
	}
}

func (h *StatusHandler) RegisterRoutes(r *gin.RouterGroup) {
	verification := r.Group("/verification")
	verification.Use(middleware.AuthMiddleware())
	{
		verification.GET("/status", h.GetStatus)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.PUT("/:userId/status", h.UpdateUserStatus)
		admin.GET("/:userId/verification-status", h.GetUserStatus)
	}
}

func (h *StatusHandler) GetStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	resp, err := h.statusService.Compute(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetUserStatus lets an administrator inspect any account's progress before
// granting verified status.
func (h *StatusHandler) GetUserStatus(c *gin.Context) {
	resp, err := h.statusService.Compute(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *StatusHandler) UpdateUserStatus(c *gin.Context) {
	var req dto.UpdateUserStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateStatus(h.GetDB(c), c.Param("userId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"status":  user.Status,
	})
}
