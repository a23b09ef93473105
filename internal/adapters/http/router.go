package http

import (
	"github.com/gofiber/fiber/v3"

	"bookshelf/internal/adapters/http/middleware"
	"bookshelf/internal/config"
	"bookshelf/internal/ports/api"
)

// AppName - имя fiber приложения.
const AppName = "bookshelf"

// Dependencies - зависимости HTTP слоя.
type Dependencies struct {
	Books    api.BookUseCase
	Users    api.UserUseCase
	Sessions api.SessionUseCase
	Store    Pinger

	// RateLimiter необязателен.
	RateLimiter  *middleware.RateLimiter
	SecureCookie bool
}

// NewApp создает fiber приложение с классификатором ошибок.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      AppName,
		ErrorHandler: ErrorHandler,
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, deps Dependencies) {
	books := NewBookHandler(deps.Books)
	users := NewUserHandler(deps.Users)
	sessions := NewSessionHandler(deps.Sessions, deps.SecureCookie)
	gate := middleware.NewAuthMiddleware(deps.Sessions)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware(ErrorHandler))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", NewHealthHandler(deps.Store))

	apiGroup := app.Group("/api")
	if deps.RateLimiter != nil {
		apiGroup.Use(deps.RateLimiter.Handler())
	}

	// fiber выполняет middleware маршрута (gate) раньше обработчика.
	apiGroup.Get("/books", books.List, gate)
	apiGroup.Post("/books", books.Create, gate)
	apiGroup.Get("/books/:id", books.Get, gate)
	apiGroup.Patch("/books/:id", books.Update, gate)
	apiGroup.Delete("/books/:id", books.Delete, gate)

	// Маршруты сессий регистрируются раньше /users/:id.
	apiGroup.Post("/users/login", sessions.Login, gate)
	apiGroup.Get("/users/profile", sessions.Profile, gate)
	apiGroup.Delete("/users/logout", sessions.Logout, gate)
	apiGroup.Delete("/users/logout-all", sessions.LogoutAll, gate)

	apiGroup.Get("/users", users.List, gate)
	apiGroup.Post("/users", users.Create, gate)
	apiGroup.Get("/users/:id", users.Get, gate)
	apiGroup.Patch("/users/:id", users.Update, gate)
	apiGroup.Delete("/users/:id", users.Delete, gate)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": MessageRouteNotFound,
		})
	})
}
