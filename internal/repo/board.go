package repo

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/tkesgar/javelin/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BoardRepo represents the repository for the board model
type BoardRepo struct {
	db *gorm.DB
}

// BoardPatch carries a partial board update. Nil fields are left untouched
// so a caller can never null out a field it did not mention.
type BoardPatch struct {
	Title       *string
	Description *string
	Config      *models.BoardConfig
	Labels      *[]models.Label
}

type BoardRepoInterface interface {
	CreateBoard(ownerID, title string, description *string, sectionTitles []string) (*models.Board, error)
	GetBoardBySlug(slug string) (*models.Board, error)
	GetBoardByID(id uint64) (*models.Board, error)
	GetBoardSections(boardID uint64) ([]models.Section, error)
	GetBoardsByOwner(ownerID string) ([]models.Board, error)
	UpdateBoard(slug string, patch BoardPatch) (*models.Board, error)
	RemoveBoard(slug string) error
}

func NewBoardRepository(db *gorm.DB) BoardRepoInterface {
	return &BoardRepo{db: db}
}

// CreateBoard writes the board row and one section row per title inside a
// single transaction, so a board is never observable without its sections.
func (r *BoardRepo) CreateBoard(ownerID, title string, description *string, sectionTitles []string) (*models.Board, error) {
	board := &models.Board{
		Slug:         newSlug(),
		Title:        title,
		Description:  description,
		OwnerID:      ownerID,
		SectionCount: len(sectionTitles),
		Config:       datatypes.NewJSONType(models.DefaultBoardConfig()),
		Labels:       datatypes.NewJSONType(models.DefaultLabels()),
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(board).Error; err != nil {
			return err
		}
		for i, sectionTitle := range sectionTitles {
			section := &models.Section{
				BoardID: board.ID,
				Title:   sectionTitle,
				Order:   i,
			}
			if err := tx.Create(section).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return board, nil
}

// GetBoardBySlug returns the board with the given public slug
func (r *BoardRepo) GetBoardBySlug(slug string) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("slug = ?", slug).First(&board).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepo) GetBoardByID(id uint64) (*models.Board, error) {
	var board models.Board
	if err := r.db.First(&board, id).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// GetBoardSections returns the board's sections in positional order
func (r *BoardRepo) GetBoardSections(boardID uint64) ([]models.Section, error) {
	var sections []models.Section
	err := r.db.Where("board_id = ?", boardID).Order("\"order\" asc").Find(&sections).Error
	return sections, err
}

// GetBoardsByOwner returns all boards whose owner equals the given identity
func (r *BoardRepo) GetBoardsByOwner(ownerID string) ([]models.Board, error) {
	var boards []models.Board
	err := r.db.Where("owner_id = ?", ownerID).Find(&boards).Error
	return boards, err
}

// UpdateBoard applies only the fields present in the patch. Last writer
// wins; there is no optimistic concurrency control.
func (r *BoardRepo) UpdateBoard(slug string, patch BoardPatch) (*models.Board, error) {
	var board models.Board
	if err := r.db.Where("slug = ?", slug).First(&board).Error; err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			updates["description"] = nil
		} else {
			updates["description"] = *patch.Description
		}
	}
	if patch.Config != nil {
		updates["config"] = datatypes.NewJSONType(*patch.Config)
	}
	if patch.Labels != nil {
		updates["labels"] = datatypes.NewJSONType(*patch.Labels)
	}

	if len(updates) == 0 {
		return &board, nil
	}

	if err := r.db.Model(&board).Updates(updates).Error; err != nil {
		return nil, err
	}

	// Re-read so the caller sees exactly what was stored
	if err := r.db.First(&board, board.ID).Error; err != nil {
		return nil, err
	}
	return &board, nil
}

// RemoveBoard deletes the board by slug. Removing its sections and cards is
// delegated to the ON DELETE CASCADE foreign keys.
func (r *BoardRepo) RemoveBoard(slug string) error {
	return r.db.Where("slug = ?", slug).Delete(&models.Board{}).Error
}

// newSlug generates the 16-hex-char public board identifier. Collisions are
// not checked; the identifier is non-cryptographic and low-traffic.
func newSlug() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
