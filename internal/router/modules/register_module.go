package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-user-registration/internal/interface/http"
)

// RegisterModule serves the HTML registration flow at the site root.
type RegisterModule struct {
	Handler *handlers.RegisterHandler
}

func NewRegisterModule(h *handlers.RegisterHandler) *RegisterModule {
	return &RegisterModule{Handler: h}
}

func (m *RegisterModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/register", m.Handler.ShowRegister)
	rg.POST("/register", m.Handler.Register)
}
