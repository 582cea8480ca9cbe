package router

import (
	"github.com/oksasatya/go-todo-api/internal/application"
	"github.com/oksasatya/go-todo-api/internal/container"
	pginfra "github.com/oksasatya/go-todo-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-todo-api/internal/interface/http"
	"github.com/oksasatya/go-todo-api/internal/router/modules"
)

func buildTodoModule() *modules.TodoModule {
	repo := pginfra.NewTodoRepository(container.GetPGPool())
	svc := application.NewTodoService(
		repo,
		container.GetLogger(),
		container.GetES(),
		container.GetConfig().ESTodosIndex,
	)
	return modules.NewTodoModule(handlers.NewTodoHandler(svc, container.GetLogger()))
}

func buildUserModule() *modules.UserModule {
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetLogger(),
		container.GetRabbitPub(),
	)
	return modules.NewUserModule(handlers.NewUserHandler(svc, container.GetLogger()), svc)
}

// InitModules initializes all application modules and registers them with
// the router registry. Called once during startup.
func InitModules(r *Registry) {
	r.Add(buildTodoModule())
	r.Add(buildUserModule())
	r.Add(modules.NewHealthModule())
	if cfg := container.GetConfig(); cfg != nil && cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
