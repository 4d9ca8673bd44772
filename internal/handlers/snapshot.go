package handlers

import (
	"time"

	"github.com/tkesgar/javelin/internal/models"
	"github.com/tkesgar/javelin/internal/repo"
)

// BoardState is the full current state of a board scope, delivered to
// realtime subscribers on every change.
type BoardState struct {
	Board    *models.Board      `json:"board"`
	Sections []models.Section   `json:"sections"`
	Cards    []CardView         `json:"cards"`
	Users    []models.BoardUser `json:"users"`
}

// SnapshotService assembles board snapshots for the realtime hub.
type SnapshotService struct {
	boardRepo repo.BoardRepoInterface
	cardRepo  repo.CardRepoInterface
	userRepo  repo.UserRepoInterface
}

func NewSnapshotService(boardRepo repo.BoardRepoInterface, cardRepo repo.CardRepoInterface, userRepo repo.UserRepoInterface) *SnapshotService {
	return &SnapshotService{
		boardRepo: boardRepo,
		cardRepo:  cardRepo,
		userRepo:  userRepo,
	}
}

func (s *SnapshotService) BoardSnapshot(boardSlug string) (interface{}, error) {
	board, err := s.boardRepo.GetBoardBySlug(boardSlug)
	if err != nil {
		return nil, err
	}

	sections, err := s.boardRepo.GetBoardSections(board.ID)
	if err != nil {
		return nil, err
	}

	cards, err := s.cardRepo.GetCardsByBoardSlug(boardSlug)
	if err != nil {
		return nil, err
	}

	users, err := s.userRepo.GetBoardUsers(board.ID)
	if err != nil {
		return nil, err
	}

	return &BoardState{
		Board:    board,
		Sections: sections,
		Cards:    cardViews(cards, board, time.Now()),
		Users:    users,
	}, nil
}
