package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/labels"
	"github.com/tkesgar/javelin/internal/models"
)

// Publisher notifies realtime subscribers that a board's state changed.
// The hub satisfies this; tests pass nil and skip publishing.
type Publisher interface {
	Publish(boardSlug string)
}

var validate = validator.New()

// badRequest answers invalid input the way the original API does: 400 with
// the literal text body, no structured error.
func badRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).SendString("Bad Request")
}

// CardView is a card annotated with its derived tags and the label-colored
// rendering of its content. Both are computed per read and never stored.
type CardView struct {
	models.Card
	Tags        []string `json:"tags"`
	ContentHTML string   `json:"contentHtml"`
}

func cardViews(cards []models.Card, board *models.Board, now time.Time) []CardView {
	cfg := board.Config.Data()
	labelSet := board.Labels.Data()

	views := make([]CardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, CardView{
			Card:        card,
			Tags:        labels.Derive(card.Content, labelSet, cfg.MarkStaleMinutes, card.TimeCreated, now),
			ContentHTML: labels.Colorize(card.Content, labelSet),
		})
	}
	return views
}
