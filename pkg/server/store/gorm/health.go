package gorm

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/trustseal/trustseal-go/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore implements store.HealthStore using GORM
type HealthStore struct {
	db *gorm.DB
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(db *gorm.DB) *HealthStore {
	return &HealthStore{db: db}
}

// CheckDatabase verifies database connectivity with a trivial query
func (s *HealthStore) CheckDatabase() error {
	var one int
	if err := s.db.Raw(`SELECT 1`).Scan(&one).Error; err != nil {
		return fmt.Errorf("database check failed: %w", err)
	}
	return nil
}
