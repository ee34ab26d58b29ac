package v1

import (
	"log"

	"taskmatch/internal/config"
	"taskmatch/internal/database"
	"taskmatch/internal/delivery/http/handler"
	"taskmatch/internal/delivery/http/middleware"
	"taskmatch/internal/domain/matching"
	"taskmatch/internal/domain/user"
	"taskmatch/internal/infrastructure/cache"
	"taskmatch/internal/notify"
	"taskmatch/internal/pkg/jwt"
	"taskmatch/internal/repository"
	"taskmatch/internal/usecase"
	"taskmatch/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the route tree is built on.
// Repositories and usecases are constructed here; long-lived pieces
// (pool, cache, hub, pipeline) come from the caller.
type Deps struct {
	Cfg    config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Queue  usecase.CVQueue
	Mailer *notify.EmailSender
	Logger *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		d.Cfg.JWT.AccessSecret,
		d.Cfg.JWT.RefreshSecret,
		d.Cfg.JWT.AccessExpiresIn,
		d.Cfg.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)
	pmOnly := authMw.RequireRole(string(user.RolePM))

	userRepo := repository.NewPostgresUserRepository(d.DB)
	employeeRepo := repository.NewPostgresEmployeeRepository(d.DB)
	recordRepo := repository.NewPostgresSkillRecordRepository(d.DB)
	cvRepo := repository.NewPostgresCVRepository(d.DB)
	taskRepo := repository.NewPostgresTaskRepository(d.DB)
	assignmentRepo := repository.NewPostgresAssignmentRepository(d.DB)
	projectRepo := repository.NewPostgresProjectRepository(d.DB)
	skillRepo := repository.NewPostgresSkillRepository(d.DB)

	notifier := notify.NewNotifier(d.Hub, d.Mailer, userRepo, employeeRepo, assignmentRepo, d.Logger)

	params := matching.Params{FuzzyOverlapThreshold: d.Cfg.Matching.FuzzyOverlapThreshold}

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	employeeUC := usecase.NewEmployeeUsecase(employeeRepo, recordRepo, assignmentRepo, cvRepo)
	recordUC := usecase.NewSkillRecordUsecase(recordRepo, employeeRepo)
	cvUC := usecase.NewCVUsecase(cvRepo, employeeRepo, d.Queue)
	matchingUC := usecase.NewMatchingUsecase(taskRepo, employeeRepo, recordRepo, assignmentRepo, params, notifier)
	taskUC := usecase.NewTaskUsecase(taskRepo, projectRepo, assignmentRepo, matchingUC, notifier)
	projectUC := usecase.NewProjectUsecase(projectRepo)
	catalogUC := usecase.NewSkillCatalogUsecase(skillRepo)
	dashboardUC := usecase.NewDashboardUsecase(employeeRepo, taskRepo, assignmentRepo, recordRepo, d.Cache, d.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	userHandler := handler.NewUserHandler(authUC)
	employeeHandler := handler.NewEmployeeHandler(employeeUC, recordUC, cvUC, dashboardUC)
	taskHandler := handler.NewTaskHandler(taskUC, matchingUC, dashboardUC)
	projectHandler := handler.NewProjectHandler(projectUC)
	skillHandler := handler.NewSkillHandler(catalogUC)
	dashboardHandler := handler.NewDashboardHandler(dashboardUC, employeeUC)
	wsHandler := ws.NewHandler(d.Hub, d.Logger)

	authHandler.RegisterRoutes(r.Group("/auth"))
	r.Get("/ws", wsHandler.HandleEventsWS)

	protected := r.Group("", authMw.Middleware())
	userHandler.RegisterRoutes(protected.Group("/auth"))
	employeeHandler.RegisterRoutes(protected.Group("/employees"), pmOnly)
	taskHandler.RegisterRoutes(protected.Group("/tasks"), pmOnly)
	projectHandler.RegisterRoutes(protected.Group("/projects"), pmOnly)
	skillHandler.RegisterRoutes(protected.Group("/skills"))
	dashboardHandler.RegisterRoutes(protected.Group("/dashboard"))
}
