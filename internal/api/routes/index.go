package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/realtime"
	"gorm.io/gorm"
)

func Register(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	api := app.Group("/api")

	registerHealth(api)
	registerBoard(api, db, hub)
	registerCard(api, db, hub)

	app.Get("/ws", realtime.Handler(hub))
}
