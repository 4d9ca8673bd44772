package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/handlers"
	"github.com/tkesgar/javelin/internal/realtime"
	"github.com/tkesgar/javelin/internal/repo"
	"gorm.io/gorm"
)

func registerCard(r fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	// Initialize handler
	boardRepo := repo.NewBoardRepository(db)
	cardRepo := repo.NewCardRepository(db)
	userRepo := repo.NewUserRepository(db)
	cardHandler := handlers.NewCardHandler(boardRepo, cardRepo, userRepo, hub)

	// Register routes
	r.Get("/board/:slug/card", cardHandler.GetBoardCards)
	r.Post("/board/:slug/card", cardHandler.CreateBoardCard)
	r.Post("/card", cardHandler.CreateCard)
	r.Patch("/card/:id", cardHandler.UpdateCard)
	r.Delete("/card/:id", cardHandler.RemoveCard)
	r.Post("/card/:id/vote", cardHandler.VoteCard)
}
