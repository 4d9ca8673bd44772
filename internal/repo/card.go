package repo

import (
	"errors"

	"github.com/tkesgar/javelin/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrSectionNotFound is returned when a card operation names a section
	// that does not exist.
	ErrSectionNotFound = errors.New("section not found")
	// ErrSectionBoardMismatch is returned when the target section of a card
	// operation belongs to a different board than the card.
	ErrSectionBoardMismatch = errors.New("section belongs to a different board")
)

type CardRepo struct {
	db *gorm.DB
}

type CardRepoInterface interface {
	CreateCard(sectionID uint64, userID, content string) (*models.Card, error)
	GetCard(id uint64) (*models.Card, error)
	GetCardsByBoardID(boardID uint64) ([]models.Card, error)
	GetCardsByBoardSlug(slug string) ([]models.Card, error)
	UpdateCardContent(id uint64, content string) (*models.Card, error)
	MoveCard(id uint64, sectionID uint64) (*models.Card, error)
	VoteCard(id uint64, amount int) error
	RemoveCard(id uint64) error
}

// NewCardRepository returns a new instance of CardRepo
func NewCardRepository(db *gorm.DB) CardRepoInterface {
	return &CardRepo{db: db}
}

// CreateCard inserts a new card under the section. The owning board is
// resolved from the section row.
func (r *CardRepo) CreateCard(sectionID uint64, userID, content string) (*models.Card, error) {
	var section models.Section
	if err := r.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	card := &models.Card{
		BoardID:   section.BoardID,
		SectionID: section.ID,
		UserID:    userID,
		Content:   content,
	}
	if err := r.db.Create(card).Error; err != nil {
		return nil, err
	}
	return card, nil
}

func (r *CardRepo) GetCard(id uint64) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *CardRepo) GetCardsByBoardID(boardID uint64) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.Where("board_id = ?", boardID).Find(&cards).Error
	return cards, err
}

func (r *CardRepo) GetCardsByBoardSlug(slug string) ([]models.Card, error) {
	var cards []models.Card
	err := r.db.
		Where("board_id IN (?)", r.db.Model(&models.Board{}).Select("id").Where("slug = ?", slug)).
		Find(&cards).Error
	return cards, err
}

// UpdateCardContent persists new content and refreshes time_updated.
// Creation time and section are untouched.
func (r *CardRepo) UpdateCardContent(id uint64, content string) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&card).Update("content", content).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// MoveCard relocates the card to another section of the same board as one
// transactional update. Content, creation time and author are preserved by
// construction; concurrent moves degrade to last-writer-wins on section_id.
// A move to the card's current section short-circuits without touching the
// row, so time_updated only changes when the card actually moves.
func (r *CardRepo) MoveCard(id uint64, sectionID uint64) (*models.Card, error) {
	var card models.Card
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&card, id).Error; err != nil {
			return err
		}
		if card.SectionID == sectionID {
			return nil
		}

		var section models.Section
		if err := tx.First(&section, sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}
		if section.BoardID != card.BoardID {
			return ErrSectionBoardMismatch
		}

		return tx.Model(&card).Update("section_id", section.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// VoteCard adds amount to the card's vote count as a single atomic
// increment at the storage layer, never read-modify-write.
func (r *CardRepo) VoteCard(id uint64, amount int) error {
	return r.db.Model(&models.Card{}).
		Where("id = ?", id).
		Update("vote", gorm.Expr("vote + ?", amount)).Error
}

// RemoveCard deletes the card by id. Deleting a missing card is a no-op.
func (r *CardRepo) RemoveCard(id uint64) error {
	return r.db.Delete(&models.Card{}, id).Error
}
