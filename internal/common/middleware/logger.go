package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

// ============================================================
// Logger Middleware
// ============================================================

// Logger возвращает access-log middleware; service попадает в каждую строку,
// чтобы логи gateway и builder можно было различить в общем потоке.
func Logger(service string) fiber.Handler {
	return logger.New(logger.Config{
		Format:     "[${time}] " + service + " ${status} - ${latency} ${method} ${path} | Content-Length: ${reqHeader:Content-Length}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	})
}
