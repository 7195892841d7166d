package reconcile

import (
	"context"
	"fmt"

	"triprecord/core/batch"
	"triprecord/feature/trips/models"

	"gorm.io/gorm"
)

// ApplyOptions controls how a plan's operations are committed.
type ApplyOptions struct {
	// ChunkSize caps operations per commit; 0 uses batch.DefaultChunkSize.
	ChunkSize int
	// FromChunk resumes a previously failed run at the given chunk cursor.
	FromChunk int
}

// Apply commits the plan's operations in fixed-size chunks, one database
// transaction per chunk, sequentially. A failed chunk leaves earlier chunks
// committed and aborts the rest; the returned result carries the resume
// cursor. There is no compensating rollback.
func Apply(ctx context.Context, db *gorm.DB, ops []Operation, opts ApplyOptions) (batch.Result, error) {
	return batch.Run(ctx, ops, opts.ChunkSize, opts.FromChunk, func(ctx context.Context, chunk []Operation) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, op := range chunk {
				switch op.Kind {
				case OpCreate:
					if err := tx.Create(op.Trip).Error; err != nil {
						return fmt.Errorf("create trip for charge %s: %w", deref(op.Trip.MigratedFromChargeID), err)
					}
				case OpUpdate:
					if err := tx.Model(&models.Trip{}).Where("id = ?", op.TripID).Updates(op.Fields).Error; err != nil {
						return fmt.Errorf("update trip %s: %w", op.TripID, err)
					}
				default:
					return fmt.Errorf("unknown operation kind %q", op.Kind)
				}
			}
			return nil
		})
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
