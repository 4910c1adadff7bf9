package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-registration/internal/interface/http"
)

// UserModule exposes read-only user endpoints:
// GET /api/users/search, GET /api/users/:id
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/api/users")
	users.GET("/search", m.Handler.Search)
	users.GET("/:id", m.Handler.GetUser)
}
