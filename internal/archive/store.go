package archive

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Tusshar172004/Code-Pod/internal/errs"
	"github.com/Tusshar172004/Code-Pod/internal/model"
)

// Store reads archived snapshots for the REST surface.
type Store struct {
	db *gorm.DB
}

// NewStore creates a read-only archive store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Latest returns the archived snapshot for a room.
func (s *Store) Latest(roomID string) (*model.RoomSnapshot, error) {
	var row model.RoomSnapshot
	if err := s.db.Where("room_id = ?", roomID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSnapshotNotFound
		}
		return nil, err
	}
	return &row, nil
}
