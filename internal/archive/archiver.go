// Package archive persists the latest code snapshot per room to PostgreSQL.
// It is an optional write-behind sink: the in-memory hub stores stay
// authoritative, and a lost archive write only affects the REST snapshot view.
package archive

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Tusshar172004/Code-Pod/internal/model"
)

type writeKind int

const (
	writeSnapshot writeKind = iota
	writeClose
)

type write struct {
	kind   writeKind
	roomID string
	code   string
}

// Archiver upserts room snapshots from a single writer goroutine so rows are
// applied in the order the hub accepted the writes.
type Archiver struct {
	db  *gorm.DB
	log *zap.Logger

	mu     sync.Mutex
	closed bool
	ch     chan write
	done   chan struct{}
}

// New creates an archiver and starts its writer. Call Close when done.
func New(db *gorm.DB, log *zap.Logger) *Archiver {
	a := &Archiver{
		db:   db,
		log:  log,
		ch:   make(chan write, 256),
		done: make(chan struct{}),
	}
	go a.run()
	return a
}

// WriteSnapshot enqueues an upsert of the room's latest code. Non-blocking:
// a full queue drops the write, the next accepted edit re-covers it.
func (a *Archiver) WriteSnapshot(ctx context.Context, roomID, code string) {
	if ctx.Err() != nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case a.ch <- write{kind: writeSnapshot, roomID: roomID, code: code}:
	default:
		a.log.Warn("archive queue full, dropping snapshot write", zap.String("room_id", roomID))
	}
}

// RoomClosed stamps closed_at on the room's archived snapshot.
func (a *Archiver) RoomClosed(ctx context.Context, roomID string) {
	if ctx.Err() != nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	select {
	case a.ch <- write{kind: writeClose, roomID: roomID}:
	default:
		a.log.Warn("archive queue full, dropping room close", zap.String("room_id", roomID))
	}
}

// Close stops the writer after draining queued writes. Enqueues arriving
// after Close are dropped; closing twice is a no-op.
func (a *Archiver) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		<-a.done
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()
	<-a.done
	return nil
}

func (a *Archiver) run() {
	defer close(a.done)
	for w := range a.ch {
		switch w.kind {
		case writeSnapshot:
			row := model.RoomSnapshot{RoomID: w.roomID, Code: w.code}
			err := a.db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "room_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"code", "updated_at", "closed_at"}),
			}).Create(&row).Error
			if err != nil {
				a.log.Warn("archive snapshot write failed",
					zap.String("room_id", w.roomID), zap.Error(err))
			}
		case writeClose:
			now := time.Now()
			err := a.db.Model(&model.RoomSnapshot{}).
				Where("room_id = ?", w.roomID).
				Update("closed_at", now).Error
			if err != nil {
				a.log.Warn("archive room close failed",
					zap.String("room_id", w.roomID), zap.Error(err))
			}
		}
	}
}
