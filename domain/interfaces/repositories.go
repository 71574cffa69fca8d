package interfaces

import (
	"context"

	"lotto645/domain/entities"
)

// LottoResultRepository defines the interface for draw archive access.
// The archive is append-only from the core's point of view: records are
// written once by the ingestion path and only ever read afterwards.
type LottoResultRepository interface {
	// ListAll returns every archived draw, ascending by draw number.
	ListAll(ctx context.Context) ([]*entities.DrawRecord, error)

	// ListRecent returns the most recent n draws, ascending by draw
	// number. n <= 0 returns the whole archive.
	ListRecent(ctx context.Context, n int) ([]*entities.DrawRecord, error)

	// GetLatest returns the highest-numbered draw, or nil when the
	// archive is empty.
	GetLatest(ctx context.Context) (*entities.DrawRecord, error)

	// Create appends a new draw record.
	Create(ctx context.Context, record *entities.DrawRecord) error

	// CountAll returns the number of archived draws.
	CountAll(ctx context.Context) (int64, error)
}
