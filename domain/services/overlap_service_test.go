package services

import (
	"context"
	"testing"

	"lotto645/domain/entities"
	"lotto645/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlapService_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("empty archive", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		assert.Equal(t, 0, report.TotalDraws)
		assert.Empty(t, report.FirstPrizeOverlaps)
		assert.Empty(t, report.SecondPrizeOverlaps)
		assert.Empty(t, report.ThirdPrizeOverlaps)
		assert.Empty(t, report.CrossOverlaps)
		assert.Equal(t, 0.0, report.Percentages.Percent.FirstVsFirst)
	})

	t.Run("single draw has no overlaps", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
		}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		assert.Equal(t, 1, report.TotalDraws)
		assert.Empty(t, report.FirstPrizeOverlaps)
		assert.Empty(t, report.SecondPrizeOverlaps)
		assert.Empty(t, report.ThirdPrizeOverlaps)
		assert.Equal(t, 1, report.Percentages.Denominators.UniqueFirst)
		assert.Equal(t, 6, report.Percentages.Denominators.UniqueSecond)
		assert.Equal(t, 6, report.Percentages.Denominators.UniqueThird)
		assert.Equal(t, 0.0, report.Percentages.Percent.FirstVsFirst)
	})

	t.Run("identical draws overlap in every tier", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 6}, 7),
		}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		require.Len(t, report.FirstPrizeOverlaps, 1)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, report.FirstPrizeOverlaps[0].Numbers)
		assert.Equal(t, []int64{1, 2}, report.FirstPrizeOverlaps[0].Draws)

		// All 6 second-tier and third-tier variants recur.
		assert.Len(t, report.SecondPrizeOverlaps, 6)
		assert.Len(t, report.ThirdPrizeOverlaps, 6)

		assert.Equal(t, 1, report.Percentages.Counts.FirstVsFirst)
		assert.Equal(t, 100.0, report.Percentages.Percent.FirstVsFirst)
	})

	t.Run("disjoint draws never overlap", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{20, 21, 22, 23, 24, 25}, 30),
		}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		assert.Empty(t, report.FirstPrizeOverlaps)
		assert.Empty(t, report.SecondPrizeOverlaps)
		assert.Empty(t, report.ThirdPrizeOverlaps)
		assert.Empty(t, report.CrossOverlaps)
	})

	t.Run("third tier overlap from five shared mains", func(t *testing.T) {
		// Both draws share the five numbers 1..5, so the 5-set {1..5}
		// is a third-tier derivation of each.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 10),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 45}, 20),
		}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		assert.Empty(t, report.FirstPrizeOverlaps)
		require.Len(t, report.ThirdPrizeOverlaps, 1)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, report.ThirdPrizeOverlaps[0].Numbers)
		assert.Equal(t, []int64{1, 2}, report.ThirdPrizeOverlaps[0].Draws)
	})

	t.Run("cross overlap between third and second tiers", func(t *testing.T) {
		// Draw 1's third-tier 5-set {1,2,3,4,5} appears inside draw 2's
		// second-tier derivations: draw 2 main {1,2,3,4,5,40} with
		// bonus 6 yields second sets containing that 5-subset.
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 30}, 44),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 40}, 6),
		}, nil)

		report, err := NewOverlapService(mockRepo).Analyze(ctx)
		require.NoError(t, err)

		found := false
		for _, entry := range report.CrossOverlaps {
			if assert.ObjectsAreEqual([]int{1, 2, 3, 4, 5}, entry.Numbers) {
				found = true
				assert.Contains(t, entry.SecondDraws, int64(2))
				assert.Contains(t, entry.ThirdDraws, int64(1))
			}
		}
		assert.True(t, found, "expected cross overlap on {1,2,3,4,5}")
	})

	t.Run("entries are deterministically sorted", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(3, [6]int{10, 11, 12, 13, 14, 15}, 16),
			archivedDraw(4, [6]int{10, 11, 12, 13, 14, 15}, 16),
		}, nil)

		svc := NewOverlapService(mockRepo)
		first, err := svc.Analyze(ctx)
		require.NoError(t, err)
		second, err := svc.Analyze(ctx)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		require.Len(t, first.FirstPrizeOverlaps, 2)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, first.FirstPrizeOverlaps[0].Numbers)
		assert.Equal(t, []int{10, 11, 12, 13, 14, 15}, first.FirstPrizeOverlaps[1].Numbers)
	})
}
