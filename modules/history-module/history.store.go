package history_module

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/inethub/rrtool/database/entities"
)

var (
	// ErrStoreUnavailable wraps any persistence-layer failure.
	ErrStoreUnavailable = errors.New("history store unavailable")
	// ErrValidation marks unparseable input, e.g. a bad date string.
	ErrValidation = errors.New("invalid history record")
)

// Store persists and lists task-history rows. Filtering happens above the
// store; ListAll always returns every row ordered by created_at descending.
type Store interface {
	Create(rec *entities.UserTaskHistory) error
	ListAll() ([]entities.UserTaskHistory, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Create(rec *entities.UserTaskHistory) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *GormStore) ListAll() ([]entities.UserTaskHistory, error) {
	var rows []entities.UserTaskHistory
	if err := s.db.Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return rows, nil
}

// MemoryStore keeps rows in memory. Used by tests and available as a
// fallback when the service runs without a database.
type MemoryStore struct {
	rows   []entities.UserTaskHistory
	nextID uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) Create(rec *entities.UserTaskHistory) error {
	rec.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, *rec)
	return nil
}

func (s *MemoryStore) ListAll() ([]entities.UserTaskHistory, error) {
	out := make([]entities.UserTaskHistory, len(s.rows))
	copy(out, s.rows)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
