package repo

import (
	"github.com/tkesgar/javelin/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	db *gorm.DB
}

type UserRepoInterface interface {
	UpsertBoardUser(user *models.BoardUser) error
	GetBoardUsers(boardID uint64) ([]models.BoardUser, error)
}

func NewUserRepository(db *gorm.DB) UserRepoInterface {
	return &UserRepo{db: db}
}

// UpsertBoardUser creates or replaces the identity's membership record for
// the board. Membership records are never removed.
func (r *UserRepo) UpsertBoardUser(user *models.BoardUser) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "photo_url", "time_updated"}),
	}).Create(user).Error
}

func (r *UserRepo) GetBoardUsers(boardID uint64) ([]models.BoardUser, error) {
	var users []models.BoardUser
	err := r.db.Where("board_id = ?", boardID).Find(&users).Error
	return users, err
}
