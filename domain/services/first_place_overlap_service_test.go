package services

import (
	"context"
	"testing"

	"lotto645/domain/entities"
	"lotto645/domain/interfaces"
	"lotto645/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstPlaceOverlapService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("empty archive", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{}, nil)

		report, err := NewFirstPlaceOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, report.TotalDraws)
		assert.Empty(t, report.Overlaps)
	})

	t.Run("same draw matches never count", func(t *testing.T) {
		// A single draw's own third-tier 5-subsets trivially match its
		// own first-place set; none of them may be reported.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
		}, nil)

		report, err := NewFirstPlaceOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.TotalDraws)
		assert.Empty(t, report.Overlaps)
	})

	t.Run("second tier match against another first place", func(t *testing.T) {
		// Draw 1: mains {1,2,3,4,5,10}, bonus 6. The derivation
		// {1,2,3,4,5}+6 equals draw 2's first place {1,2,3,4,5,6}.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 10}, 6),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 6}, 40),
		}, nil)

		report, err := NewFirstPlaceOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		var secondMatches []interfaces.FirstPlaceOverlap
		for _, overlap := range report.Overlaps {
			if overlap.OverlapType == interfaces.OverlapTierSecond {
				secondMatches = append(secondMatches, overlap)
			}
		}
		require.Len(t, secondMatches, 1)
		assert.Equal(t, int64(1), secondMatches[0].SourceDraw)
		assert.Equal(t, int64(2), secondMatches[0].TargetDraw)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, secondMatches[0].MatchingNumbers)
	})

	t.Run("third tier match against another first place", func(t *testing.T) {
		// Both draws share the 5-subset {1,2,3,4,5}, so each draw's
		// third-tier derivation hits the other's first-place subsets.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 30),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 45}, 31),
		}, nil)

		report, err := NewFirstPlaceOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		var thirdMatches []interfaces.FirstPlaceOverlap
		for _, overlap := range report.Overlaps {
			if overlap.OverlapType == interfaces.OverlapTierThird {
				thirdMatches = append(thirdMatches, overlap)
			}
		}
		require.Len(t, thirdMatches, 2)
		assert.Equal(t, int64(1), thirdMatches[0].SourceDraw)
		assert.Equal(t, int64(2), thirdMatches[0].TargetDraw)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, thirdMatches[0].MatchingNumbers)
		assert.Equal(t, int64(2), thirdMatches[1].SourceDraw)
		assert.Equal(t, int64(1), thirdMatches[1].TargetDraw)
	})

	t.Run("duplicate derivations reported once", func(t *testing.T) {
		// Identical mains produce the same third-tier 5-set from every
		// direction; each (source, target, numbers) pair appears once.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 6}, 8),
		}, nil)

		report, err := NewFirstPlaceOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		type pair struct {
			source, target int64
			tier           interfaces.OverlapTier
			numbers        string
		}
		seen := make(map[pair]int)
		for _, overlap := range report.Overlaps {
			key := pair{
				source: overlap.SourceDraw,
				target: overlap.TargetDraw,
				tier:   overlap.OverlapType,
			}
			for _, n := range overlap.MatchingNumbers {
				key.numbers += string(rune('a' + n))
			}
			seen[key]++
		}
		for key, count := range seen {
			assert.Equal(t, 1, count, "duplicate overlap entry %+v", key)
		}

		// 6 third-tier 5-subsets in each direction.
		var thirdCount int
		for _, overlap := range report.Overlaps {
			if overlap.OverlapType == interfaces.OverlapTierThird {
				thirdCount++
			}
		}
		assert.Equal(t, 12, thirdCount)
	})
}
