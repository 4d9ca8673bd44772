package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/tkesgar/javelin/internal/models"
	"github.com/tkesgar/javelin/internal/repo"
	"gorm.io/gorm"
)

// for simple crud operations service layer is not required
type BoardHandler struct {
	boardRepo repo.BoardRepoInterface
	publisher Publisher
}

func NewBoardHandler(boardRepo repo.BoardRepoInterface, publisher Publisher) *BoardHandler {
	return &BoardHandler{
		boardRepo: boardRepo,
		publisher: publisher,
	}
}

func (h *BoardHandler) publish(boardSlug string) {
	if h.publisher != nil {
		h.publisher.Publish(boardSlug)
	}
}

func boardResponse(board *models.Board, sections []models.Section) fiber.Map {
	return fiber.Map{
		"id":           board.ID,
		"slug":         board.Slug,
		"title":        board.Title,
		"description":  board.Description,
		"ownerId":      board.OwnerID,
		"sectionCount": board.SectionCount,
		"config":       board.Config.Data(),
		"labels":       board.Labels.Data(),
		"timeCreated":  board.TimeCreated,
		"timeUpdated":  board.TimeUpdated,
		"sections":     sections,
	}
}

// CreateBoard handles POST /api/board
func (h *BoardHandler) CreateBoard(c *fiber.Ctx) error {
	var dto struct {
		Title         string   `json:"title" validate:"required,min=1,max=40"`
		Description   string   `json:"description" validate:"omitempty,max=160"`
		OwnerID       string   `json:"ownerId" validate:"omitempty,max=64"`
		SectionTitles []string `json:"sectionTitles" validate:"required,min=1,max=4,dive,min=1,max=40"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c)
	}
	if err := validate.Struct(&dto); err != nil {
		return badRequest(c)
	}

	var description *string
	if dto.Description != "" {
		description = &dto.Description
	}

	board, err := h.boardRepo.CreateBoard(dto.OwnerID, dto.Title, description, dto.SectionTitles)
	if err != nil {
		log.Println(err, "Error creating board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create board",
		})
	}

	sections, err := h.boardRepo.GetBoardSections(board.ID)
	if err != nil {
		log.Println(err, "Error getting board sections")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(boardResponse(board, sections))
}

// GetBoards handles GET /api/board?ownerId=
func (h *BoardHandler) GetBoards(c *fiber.Ctx) error {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		return badRequest(c)
	}

	boards, err := h.boardRepo.GetBoardsByOwner(ownerID)
	if err != nil {
		log.Println(err, "Error getting boards")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get boards",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"boards": boards,
	})
}

// GetBoard handles GET /api/board/:slug
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
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

	return c.Status(fiber.StatusOK).JSON(boardResponse(board, sections))
}

// UpdateBoard handles PATCH /api/board/:slug. Only fields present in the
// request change; last writer wins.
func (h *BoardHandler) UpdateBoard(c *fiber.Ctx) error {
	var dto struct {
		Title       *string             `json:"title" validate:"omitempty,min=1,max=60"`
		Description *string             `json:"description" validate:"omitempty,max=160"`
		Config      *models.BoardConfig `json:"config"`
		Labels      *[]models.Label     `json:"labels"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return badRequest(c)
	}
	if err := validate.Struct(&dto); err != nil {
		return badRequest(c)
	}
	if dto.Config != nil && dto.Config.MarkStaleMinutes < 0 {
		return badRequest(c)
	}
	if dto.Labels != nil {
		for _, label := range *dto.Labels {
			if label.Key == "" {
				return badRequest(c)
			}
		}
	}

	board, err := h.boardRepo.UpdateBoard(c.Params("slug"), repo.BoardPatch{
		Title:       dto.Title,
		Description: dto.Description,
		Config:      dto.Config,
		Labels:      dto.Labels,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return badRequest(c)
		}
		log.Println(err, "Error updating board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update board",
		})
	}

	sections, err := h.boardRepo.GetBoardSections(board.ID)
	if err != nil {
		log.Println(err, "Error getting board sections")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get board",
		})
	}

	h.publish(board.Slug)

	return c.Status(fiber.StatusOK).JSON(boardResponse(board, sections))
}

// RemoveBoard handles DELETE /api/board/:slug. Sections and cards go with
// the board through the cascading foreign keys.
func (h *BoardHandler) RemoveBoard(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if err := h.boardRepo.RemoveBoard(slug); err != nil {
		log.Println(err, "Error removing board")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove board",
		})
	}

	h.publish(slug)

	return c.SendStatus(fiber.StatusNoContent)
}
