package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/handlers"
	"github.com/tkesgar/javelin/internal/realtime"
	"github.com/tkesgar/javelin/internal/repo"
	"gorm.io/gorm"
)

func registerBoard(r fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	// Initialize handler
	boardRepo := repo.NewBoardRepository(db)
	boardHandler := handlers.NewBoardHandler(boardRepo, hub)

	// Register routes
	r.Get("/board", boardHandler.GetBoards)
	r.Post("/board", boardHandler.CreateBoard)
	r.Get("/board/:slug", boardHandler.GetBoard)
	r.Patch("/board/:slug", boardHandler.UpdateBoard)
	r.Delete("/board/:slug", boardHandler.RemoveBoard)
}
