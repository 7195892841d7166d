package trips

import (
	"context"
	"fmt"

	"triprecord/feature/trips/models"

	"gorm.io/gorm"
)

// Records holds one run's full snapshot of both collections.
type Records struct {
	Charges []models.Charge
	Trips   []models.Trip
}

// LoadRecords performs the two unpaginated bulk reads a run starts with.
// A single run is expected to fit in memory; there is no filtering and no
// pagination. Any read failure aborts the run before writes happen.
func LoadRecords(ctx context.Context, db *gorm.DB) (*Records, error) {
	var recs Records

	if err := db.WithContext(ctx).Find(&recs.Charges).Error; err != nil {
		return nil, fmt.Errorf("failed to load charges: %w", err)
	}
	if err := db.WithContext(ctx).Find(&recs.Trips).Error; err != nil {
		return nil, fmt.Errorf("failed to load trips: %w", err)
	}

	return &recs, nil
}
