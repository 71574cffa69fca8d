package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lotto645/domain/entities"
	"lotto645/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ExclusionSets is an immutable snapshot of every combination that
// already won a prize tier in the archive:
//
//   - FirstPlace: the full 6-number main set of each draw.
//   - SecondPlace: for each draw, all 6 variants of (5 main numbers +
//     bonus), as normalized 6-sets.
//   - ThirdPlace: for each draw, all 6 variants of (any 5 of the 6 main
//     numbers), as normalized 5-sets.
//
// LatestDraw is the most recent draw's main set, nil for an empty
// archive. Once built, a snapshot is never mutated.
type ExclusionSets struct {
	FirstPlace  map[entities.Combination6]struct{}
	SecondPlace map[entities.Combination6]struct{}
	ThirdPlace  map[entities.Combination5]struct{}
	LatestDraw  *entities.Combination6
}

// ExclusionIndex lazily builds and caches the exclusion sets from the
// draw archive. The build is mutually exclusive: concurrent callers
// either perform the single build or wait and reuse the finished
// snapshot; nobody ever observes a partially populated set. The archive
// is read-mostly, so the snapshot lives until Invalidate is called
// (wired to draw ingestion).
type ExclusionIndex struct {
	repo interfaces.LottoResultRepository

	mu       sync.Mutex
	snapshot *ExclusionSets
}

// NewExclusionIndex creates an exclusion index over the given archive.
func NewExclusionIndex(repo interfaces.LottoResultRepository) *ExclusionIndex {
	return &ExclusionIndex{repo: repo}
}

// Snapshot returns the cached exclusion sets, building them on first
// use. Repository failures propagate unchanged and leave the index
// unbuilt.
func (i *ExclusionIndex) Snapshot(ctx context.Context) (*ExclusionSets, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.snapshot != nil {
		return i.snapshot, nil
	}

	started := time.Now()
	draws, err := i.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw archive: %w", err)
	}

	sets := &ExclusionSets{
		FirstPlace:  make(map[entities.Combination6]struct{}, len(draws)),
		SecondPlace: make(map[entities.Combination6]struct{}, len(draws)*6),
		ThirdPlace:  make(map[entities.Combination5]struct{}, len(draws)*6),
	}

	for _, draw := range draws {
		main := draw.MainSet()
		sets.FirstPlace[main] = struct{}{}

		for _, sub5 := range main.FiveSubsets() {
			sets.ThirdPlace[sub5] = struct{}{}
			sets.SecondPlace[entities.NewCombination6From5AndBonus(sub5, draw.Bonus)] = struct{}{}
		}
	}

	// Draws are ordered ascending, so the last one is the latest.
	if len(draws) > 0 {
		latest := draws[len(draws)-1].MainSet()
		sets.LatestDraw = &latest
	}

	i.snapshot = sets

	log.WithFields(log.Fields{
		"draws":       len(draws),
		"firstPlace":  len(sets.FirstPlace),
		"secondPlace": len(sets.SecondPlace),
		"thirdPlace":  len(sets.ThirdPlace),
		"buildTime":   time.Since(started),
	}).Info("Built historical exclusion index")

	return i.snapshot, nil
}

// Invalidate drops the cached snapshot so the next Snapshot call
// rebuilds from the archive.
func (i *ExclusionIndex) Invalidate() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.snapshot != nil {
		log.Debug("Invalidated historical exclusion index")
	}
	i.snapshot = nil
}
