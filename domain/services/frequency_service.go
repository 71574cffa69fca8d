package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"lotto645/apperrors"
	"lotto645/domain/entities"
	"lotto645/domain/interfaces"

	"github.com/montanaflynn/stats"
)

// DefaultHotColdPercent is the hot/cold bucket size used when the
// caller does not supply one.
const DefaultHotColdPercent = 0.2

// frequencyService counts per-number appearances across the archive or
// its most recent N draws and classifies the extremes into hot and cold
// buckets.
type frequencyService struct {
	repo interfaces.LottoResultRepository
}

// NewFrequencyService creates a frequency analyzer over the draw
// archive.
func NewFrequencyService(repo interfaces.LottoResultRepository) interfaces.FrequencyAnalyzer {
	return &frequencyService{repo: repo}
}

func (s *frequencyService) Analyze(ctx context.Context, recentN *int, percent float64) (*interfaces.FrequencyReport, error) {
	if recentN != nil && *recentN <= 0 {
		return nil, apperrors.NewValidation(
			"Invalid recent_n", "recent_n", "Must be a positive integer")
	}
	if percent == 0 {
		percent = DefaultHotColdPercent
	}
	if percent <= 0 || percent >= 1 {
		return nil, apperrors.NewValidation(
			"Invalid percent", "percent", "Must be strictly between 0 and 1")
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count draws: %w", err)
	}

	window := 0
	if recentN != nil {
		window = *recentN
	}
	draws, err := s.repo.ListRecent(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("failed to load draws: %w", err)
	}

	counts := make(map[int]int, entities.MaxNumber)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		counts[n] = 0
	}
	for _, draw := range draws {
		for _, n := range draw.Numbers {
			if n >= entities.MinNumber && n <= entities.MaxNumber {
				counts[n]++
			}
		}
	}

	values := make([]float64, 0, entities.MaxNumber)
	for _, c := range counts {
		values = append(values, float64(c))
	}
	minCount, err := stats.Min(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute min count: %w", err)
	}
	maxCount, err := stats.Max(values)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max count: %w", err)
	}

	// Order numbers by count, ties broken by ascending number value.
	ordered := make([]int, 0, entities.MaxNumber)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		ordered = append(ordered, n)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if counts[ordered[i]] != counts[ordered[j]] {
			return counts[ordered[i]] < counts[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})

	k := int(math.Ceil(entities.MaxNumber * percent))
	if k < 1 {
		k = 1
	}

	cold := make([]int, k)
	copy(cold, ordered[:k])

	// Hot numbers are presented highest-count first.
	hot := make([]int, k)
	for i := 0; i < k; i++ {
		hot[i] = ordered[len(ordered)-1-i]
	}

	coldSet := make(map[int]bool, k)
	for _, n := range cold {
		coldSet[n] = true
	}
	nonCold := make([]int, 0, entities.MaxNumber-k)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		if !coldSet[n] {
			nonCold = append(nonCold, n)
		}
	}

	return &interfaces.FrequencyReport{
		TotalDrawsInArchive: int(total),
		DrawsUsed:           len(draws),
		RecentN:             recentN,
		Percent:             percent,
		Counts:              counts,
		MinCount:            int(minCount),
		MaxCount:            int(maxCount),
		ColdNumbers:         cold,
		HotNumbers:          hot,
		NonColdNumbers:      nonCold,
	}, nil
}
