package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainRepos "smart-upi.backend/internal/domain/repositories"
)

// LedgerRecord is one keyed record of the durable store.
type LedgerRecord struct {
	Key       string    `gorm:"primaryKey;column:record_key"`
	Value     string    `gorm:"column:record_value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName returns the table name for LedgerRecord
func (LedgerRecord) TableName() string {
	return "ledger_records"
}

// GormStateStore implements StateStore on a key/value table, usable with the
// sqlite driver (durable local file) or postgres.
type GormStateStore struct {
	db *gorm.DB
}

// NewGormStateStore creates the store and migrates its table
func NewGormStateStore(db *gorm.DB) (*GormStateStore, error) {
	if err := db.AutoMigrate(&LedgerRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate ledger_records: %w", err)
	}
	return &GormStateStore{db: db}, nil
}

// Load reads all records as one snapshot
func (s *GormStateStore) Load(ctx context.Context) (*domainRepos.LedgerState, error) {
	var records []LedgerRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}

	byKey := make(map[string]string, len(records))
	for _, r := range records {
		byKey[r.Key] = r.Value
	}

	state := domainRepos.NewLedgerState()
	if raw, ok := byKey[domainRepos.RecordOrders]; ok {
		if err := json.Unmarshal([]byte(raw), &state.Orders); err != nil {
			return nil, fmt.Errorf("corrupt orders record: %w", err)
		}
	}
	if raw, ok := byKey[domainRepos.RecordAttempts]; ok {
		if err := json.Unmarshal([]byte(raw), &state.Attempts); err != nil {
			return nil, fmt.Errorf("corrupt attempts record: %w", err)
		}
	}
	if raw, ok := byKey[domainRepos.RecordOfflineQueue]; ok {
		if err := json.Unmarshal([]byte(raw), &state.OfflineQueue); err != nil {
			return nil, fmt.Errorf("corrupt offline_queue record: %w", err)
		}
	}
	if raw, ok := byKey[domainRepos.RecordOnlineStatus]; ok {
		if err := json.Unmarshal([]byte(raw), &state.Online); err != nil {
			return nil, fmt.Errorf("corrupt online_status record: %w", err)
		}
	}
	return state, nil
}

// Save writes all records in one transaction
func (s *GormStateStore) Save(ctx context.Context, state *domainRepos.LedgerState) error {
	records, err := encodeRecords(state)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			UpdateAll: true,
		}).Create(&records).Error
	})
}

// Purge removes all records
func (s *GormStateStore) Purge(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("record_key IN ?", recordKeys()).
		Delete(&LedgerRecord{}).Error
}

func encodeRecords(state *domainRepos.LedgerState) ([]LedgerRecord, error) {
	now := time.Now()
	values := []struct {
		key   string
		value interface{}
	}{
		{domainRepos.RecordOrders, state.Orders},
		{domainRepos.RecordAttempts, state.Attempts},
		{domainRepos.RecordOfflineQueue, state.OfflineQueue},
		{domainRepos.RecordOnlineStatus, state.Online},
	}

	records := make([]LedgerRecord, 0, len(values))
	for _, v := range values {
		raw, err := json.Marshal(v.value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", v.key, err)
		}
		records = append(records, LedgerRecord{Key: v.key, Value: string(raw), UpdatedAt: now})
	}
	return records, nil
}

func recordKeys() []string {
	return []string{
		domainRepos.RecordOrders,
		domainRepos.RecordAttempts,
		domainRepos.RecordOfflineQueue,
		domainRepos.RecordOnlineStatus,
	}
}
