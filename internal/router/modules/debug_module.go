package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-user-registration/internal/infrastructure/metrics"
)

type DebugModule struct {
	Metrics *metrics.Registration
}

func NewDebugModule(m *metrics.Registration) *DebugModule { return &DebugModule{Metrics: m} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// expvar, including the registration counters
	rg.GET("/api/debug/vars", gin.WrapH(expvar.Handler()))
	if m.Metrics != nil {
		rg.GET("/metrics", gin.WrapH(m.Metrics.Handler()))
	}
}
