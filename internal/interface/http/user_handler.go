package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/response"
	"github.com/oksasatya/go-user-registration/pkg/validation"
)

type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type searchRequest struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

func profile(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetUser(c.Request.Context(), c.Param("id"))
	if errors.Is(err, userapp.ErrUserNotFound) {
		response.Error[any](c, http.StatusNotFound, "user not found", nil)
		return
	}
	if err != nil {
		helpers.LogError(h.Logger, "get user failed", err, logrus.Fields{"user_id": c.Param("id")})
		response.Error[any](c, http.StatusInternalServerError, "failed to load user", nil)
		return
	}
	response.Success(c, http.StatusOK, profile(u), "user", nil)
}

// Search queries the user index.
func (h *UserHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		helpers.LogError(h.Logger, "search users failed", err, logrus.Fields{"q": req.Q})
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "users", map[string]any{"count": len(hits)})
}
