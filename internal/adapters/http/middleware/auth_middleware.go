package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bookshelf/internal/domain/entities"
	"bookshelf/internal/ports/api"
	"bookshelf/pkg/logger"
)

// SessionCookie - имя cookie с идентификатором сессии.
const SessionCookie = "sessionId"

// Константы для логирования.
const (
	LogNoSessionCookie = "no session cookie provided"
	LogSessionRejected = "session cookie rejected"
)

var sessionCookiePattern = regexp.MustCompile(SessionCookie + `=([^;]+)`)

// publicRoutes не требуют сессии.
var publicRoutes = map[string]struct{}{
	fiber.MethodPost + " /api/users":       {},
	fiber.MethodPost + " /api/users/login": {},
}

// ExtractSessionID достает идентификатор сессии из заголовка Cookie.
func ExtractSessionID(cookieHeader string) (string, bool) {
	match := sessionCookiePattern.FindStringSubmatch(cookieHeader)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

// NewAuthMiddleware проверяет cookie сессии и прикрепляет сессию к запросу.
func NewAuthMiddleware(sessions api.SessionUseCase) fiber.Handler {
	return func(c fiber.Ctx) error {
		route := c.Method() + " " + strings.TrimSuffix(c.Path(), "/")
		if _, public := publicRoutes[route]; public {
			return c.Next()
		}

		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))

		sessionID, ok := ExtractSessionID(c.Get(fiber.HeaderCookie))
		if !ok {
			log.Debug(requestCtx, LogNoSessionCookie)
			return entities.ErrUnauthorized
		}

		session, err := sessions.Resolve(requestCtx, sessionID)
		if err != nil {
			log.Debug(requestCtx, LogSessionRejected, zap.Error(err))
			return err
		}

		c.Locals(localsSession, session)
		return c.Next()
	}
}
