package services

import (
	"context"
	"errors"
	"testing"

	"lotto645/domain/entities"
	"lotto645/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func archivedDraw(drawNo int64, numbers [6]int, bonus int) *entities.DrawRecord {
	return &entities.DrawRecord{DrawNo: drawNo, Numbers: numbers, Bonus: bonus}
}

func TestExclusionIndex_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("empty archive", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{}, nil)

		index := NewExclusionIndex(mockRepo)
		sets, err := index.Snapshot(ctx)
		require.NoError(t, err)

		assert.Empty(t, sets.FirstPlace)
		assert.Empty(t, sets.SecondPlace)
		assert.Empty(t, sets.ThirdPlace)
		assert.Nil(t, sets.LatestDraw)
	})

	t.Run("single draw derives all tiers", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(100, [6]int{1, 2, 3, 4, 5, 6}, 7),
		}, nil)

		index := NewExclusionIndex(mockRepo)
		sets, err := index.Snapshot(ctx)
		require.NoError(t, err)

		main, err := entities.NewCombination6([]int{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)

		assert.Len(t, sets.FirstPlace, 1)
		assert.Contains(t, sets.FirstPlace, main)

		// 6 choose 5 variants per draw in the 2nd and 3rd tiers.
		assert.Len(t, sets.SecondPlace, 6)
		assert.Len(t, sets.ThirdPlace, 6)

		// One second place variant: {1,2,3,4,5} + bonus 7.
		second, err := entities.NewCombination6([]int{1, 2, 3, 4, 5, 7})
		require.NoError(t, err)
		assert.Contains(t, sets.SecondPlace, second)

		require.NotNil(t, sets.LatestDraw)
		assert.Equal(t, main, *sets.LatestDraw)
	})

	t.Run("duplicate derivations collapse", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{1, 2, 3, 4, 5, 6}, 7),
		}, nil)

		index := NewExclusionIndex(mockRepo)
		sets, err := index.Snapshot(ctx)
		require.NoError(t, err)

		assert.Len(t, sets.FirstPlace, 1)
		assert.Len(t, sets.SecondPlace, 6)
		assert.Len(t, sets.ThirdPlace, 6)
	})

	t.Run("latest draw is the last archived", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
			archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
			archivedDraw(2, [6]int{10, 20, 30, 40, 41, 45}, 3),
		}, nil)

		index := NewExclusionIndex(mockRepo)
		sets, err := index.Snapshot(ctx)
		require.NoError(t, err)

		expected, err := entities.NewCombination6([]int{10, 20, 30, 40, 41, 45})
		require.NoError(t, err)
		require.NotNil(t, sets.LatestDraw)
		assert.Equal(t, expected, *sets.LatestDraw)
	})

	t.Run("repository error propagates and leaves index unbuilt", func(t *testing.T) {
		mockRepo := new(testhelpers.MockLottoResultRepository)
		mockRepo.On("ListAll", ctx).Return(nil, errors.New("connection refused")).Once()
		mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{}, nil).Once()

		index := NewExclusionIndex(mockRepo)
		_, err := index.Snapshot(ctx)
		assert.Error(t, err)

		// Next call retries the build instead of caching the failure.
		sets, err := index.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, sets.FirstPlace)
	})
}

func TestExclusionIndex_Caching(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(testhelpers.MockLottoResultRepository)
	mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
		archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
	}, nil)

	index := NewExclusionIndex(mockRepo)

	first, err := index.Snapshot(ctx)
	require.NoError(t, err)
	second, err := index.Snapshot(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	mockRepo.AssertNumberOfCalls(t, "ListAll", 1)
}

func TestExclusionIndex_Invalidate(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(testhelpers.MockLottoResultRepository)
	mockRepo.On("ListAll", ctx).Return([]*entities.DrawRecord{
		archivedDraw(1, [6]int{1, 2, 3, 4, 5, 6}, 7),
	}, nil)

	index := NewExclusionIndex(mockRepo)

	_, err := index.Snapshot(ctx)
	require.NoError(t, err)

	index.Invalidate()

	_, err = index.Snapshot(ctx)
	require.NoError(t, err)

	mockRepo.AssertNumberOfCalls(t, "ListAll", 2)
}
