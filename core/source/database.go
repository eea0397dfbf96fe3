package source

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DatabaseSource loads snapshots by running a SQL query. Row order is
// whatever the query returns, so queries should carry an ORDER BY when
// positional reporting matters.
type DatabaseSource struct {
	name  string
	db    *gorm.DB
	query string
}

// NewDatabaseSource creates a database-backed snapshot source.
func NewDatabaseSource(name string, db *gorm.DB, query string) *DatabaseSource {
	return &DatabaseSource{name: name, db: db, query: query}
}

// Name identifies the source.
func (s *DatabaseSource) Name() string {
	return s.name
}

// Load runs the snapshot query and scans rows into records.
func (s *DatabaseSource) Load(ctx context.Context) ([]Record, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Raw(s.query).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshot query for source %s: %w", s.name, err)
	}
	return records, nil
}
