package router

import (
	"github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/container"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-user-registration/internal/interface/http"
	"github.com/oksasatya/go-user-registration/internal/router/modules"
)

type registrationDeps struct {
	Register *handlers.RegisterHandler
	Users    *handlers.UserHandler
}

func buildRegistrationDeps() registrationDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	// optional side effects stay nil interfaces when not configured
	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	var idx application.UserIndexer
	if es := container.GetES(); es != nil {
		idx = search.NewUserIndex(es, cfg.ESUsersIndex, logger)
	}

	svc := application.NewService(container.GetUserRepository(), pub, idx, cfg, logger)
	if m := container.GetMetrics(); m != nil {
		svc.Metrics = m
	}
	return registrationDeps{
		Register: handlers.NewRegisterHandler(svc, container.GetFlashStore(), logger, cfg.AppName),
		Users:    handlers.NewUserHandler(svc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildRegistrationDeps()
	r.Add(modules.NewRegisterModule(deps.Register))
	r.Add(modules.NewUserModule(deps.Users))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(container.GetMetrics()))
	}
}
