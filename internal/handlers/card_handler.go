package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/models"
	"github.com/tkesgar/javelin/internal/repo"
	"github.com/tkesgar/javelin/internal/text"
	"gorm.io/gorm"
)

type CardHandler struct {
	boardRepo repo.BoardRepoInterface
	cardRepo  repo.CardRepoInterface
	userRepo  repo.UserRepoInterface
	publisher Publisher
}

func NewCardHandler(boardRepo repo.BoardRepoInterface, cardRepo repo.CardRepoInterface, userRepo repo.UserRepoInterface, publisher Publisher) *CardHandler {
	return &CardHandler{
		boardRepo: boardRepo,
		cardRepo:  cardRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

func (h *CardHandler) publishBoard(boardID uint64) {
	if h.publisher == nil {
		return
	}
	board, err := h.boardRepo.GetBoardByID(boardID)
	if err != nil {
		log.Println(err, "Error resolving board for publish")
		return
	}
	h.publisher.Publish(board.Slug)
}

type createCardDTO struct {
	SectionID   uint64 `json:"sectionId" validate:"required,gt=0"`
	Content     string `json:"content" validate:"omitempty,max=1000"`
	UserID      string `json:"userId" validate:"omitempty,max=64"`
	DisplayName string `json:"displayName" validate:"omitempty,max=120"`
	PhotoURL    string `json:"photoURL" validate:"omitempty,max=500"`
}

// createCard inserts the card and, when the request carries an identity,
// upserts its board membership in the same flow (join on first write).
func (h *CardHandler) createCard(c *fiber.Ctx, dto *createCardDTO) error {
	card, err := h.cardRepo.CreateCard(dto.SectionID, dto.UserID, text.Sanitize(dto.Content))
	if err != nil {
		if errors.Is(err, repo.ErrSectionNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error creating card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create card",
		})
	}

	if dto.UserID != "" {
		err := h.userRepo.UpsertBoardUser(&models.BoardUser{
			BoardID:     card.BoardID,
			UserID:      dto.UserID,
			DisplayName: dto.DisplayName,
			PhotoURL:    dto.PhotoURL,
		})
		if err != nil {
			log.Println(err, "Error upserting board user")
		}
	}

	h.publishBoard(card.BoardID)

	return c.Status(fiber.StatusCreated).JSON(card)
}

// CreateCard handles POST /api/card
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	var dto createCardDTO
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c)
	}
	if err := validate.Struct(&dto); err != nil {
		return badRequest(c)
	}

	return h.createCard(c, &dto)
}

// CreateBoardCard handles POST /api/board/:slug/card. The section must
// belong to the board named in the path.
func (h *CardHandler) CreateBoardCard(c *fiber.Ctx) error {
	var dto createCardDTO
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c)
	}
	if err := validate.Struct(&dto); err != nil {
		return badRequest(c)
	}

	board, err := h.boardRepo.GetBoardBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error getting board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	sections, err := h.boardRepo.GetBoardSections(board.ID)
	if err != nil {
		log.Println(err, "Error getting board sections")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	found := false
	for _, section := range sections {
		if section.ID == dto.SectionID {
			found = true
			break
		}
	}
	if !found {
		return badRequest(c)
	}

	return h.createCard(c, &dto)
}

// GetBoardCards handles GET /api/board/:slug/card. Cards come back with
// their derived tags.
func (h *CardHandler) GetBoardCards(c *fiber.Ctx) error {
	board, err := h.boardRepo.GetBoardBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error getting board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	cards, err := h.cardRepo.GetCardsByBoardID(board.ID)
	if err != nil {
		log.Println(err, "Error getting cards")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cards",
		})
	}

	return c.Status(fiber.StatusOK).JSON(cardViews(cards, board, time.Now()))
}

// UpdateCard handles PATCH /api/card/:id. A sectionId change is a move; a
// content change is sanitized before storage.
func (h *CardHandler) UpdateCard(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return badRequest(c)
	}

	var dto struct {
		SectionID *uint64 `json:"sectionId" validate:"omitempty,gt=0"`
		Content   *string `json:"content" validate:"omitempty,min=1,max=1000"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c)
	}
	if err := validate.Struct(&dto); err != nil {
		return badRequest(c)
	}

	if dto.SectionID != nil {
		if _, err := h.cardRepo.MoveCard(id, *dto.SectionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) ||
				errors.Is(err, repo.ErrSectionNotFound) ||
				errors.Is(err, repo.ErrSectionBoardMismatch) {
				return badRequest(c)
			}
			log.Println(err, "Error moving card")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to move card",
			})
		}
	}

	if dto.Content != nil {
		if _, err := h.cardRepo.UpdateCardContent(id, text.Sanitize(*dto.Content)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return badRequest(c)
			}
			log.Println(err, "Error updating card content")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update card",
			})
		}
	}

	card, err := h.cardRepo.GetCard(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error getting card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get card",
		})
	}

	h.publishBoard(card.BoardID)

	return c.Status(fiber.StatusOK).JSON(card)
}

// RemoveCard handles DELETE /api/card/:id. Removing a card that is already
// gone is a no-op success.
func (h *CardHandler) RemoveCard(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return badRequest(c)
	}

	card, err := h.cardRepo.GetCard(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		log.Println(err, "Error getting card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get card",
		})
	}

	if err := h.cardRepo.RemoveCard(id); err != nil {
		log.Println(err, "Error removing card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove card",
		})
	}

	h.publishBoard(card.BoardID)

	return c.SendStatus(fiber.StatusNoContent)
}

// VoteCard handles POST /api/card/:id/vote. The increment is a single
// atomic update at the storage layer.
func (h *CardHandler) VoteCard(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return badRequest(c)
	}

	var dto struct {
		Amount *int `json:"amount"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&dto); err != nil {
			return badRequest(c)
		}
	}
	amount := 1
	if dto.Amount != nil {
		amount = *dto.Amount
	}

	card, err := h.cardRepo.GetCard(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error getting card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get card",
		})
	}

	if err := h.cardRepo.VoteCard(id, amount); err != nil {
		log.Println(err, "Error voting card")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to vote card",
		})
	}

	h.publishBoard(card.BoardID)

	return c.SendStatus(fiber.StatusNoContent)
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
