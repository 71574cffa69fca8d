package services

import (
	"context"
	"fmt"
	"sort"

	"lotto645/domain/entities"
	"lotto645/domain/interfaces"
)

// firstPlaceOverlapService matches each draw's 2nd and 3rd tier
// derivations against other draws' first-place numbers only: SECOND
// against the full 6-set, THIRD against its 5-subsets. Matches within
// the same draw never count.
type firstPlaceOverlapService struct {
	repo interfaces.LottoResultRepository
}

// NewFirstPlaceOverlapService creates the first-place-restricted
// overlap analyzer.
func NewFirstPlaceOverlapService(repo interfaces.LottoResultRepository) interfaces.FirstPlaceOverlapAnalyzer {
	return &firstPlaceOverlapService{repo: repo}
}

type firstPlaceOverlapKey struct {
	sourceDraw int64
	targetDraw int64
	tier       interfaces.OverlapTier
	numbers6   entities.Combination6
	numbers5   entities.Combination5
}

func (s *firstPlaceOverlapService) Analyze(ctx context.Context) (*interfaces.FirstPlaceOverlapReport, error) {
	draws, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw archive: %w", err)
	}

	first6ToDraws := make(map[entities.Combination6]drawNoSet)
	first5ToDraws := make(map[entities.Combination5]drawNoSet)

	for _, draw := range draws {
		main := draw.MainSet()
		set, ok := first6ToDraws[main]
		if !ok {
			set = make(drawNoSet)
			first6ToDraws[main] = set
		}
		set[draw.DrawNo] = struct{}{}

		for _, sub5 := range main.FiveSubsets() {
			subSet, ok := first5ToDraws[sub5]
			if !ok {
				subSet = make(drawNoSet)
				first5ToDraws[sub5] = subSet
			}
			subSet[draw.DrawNo] = struct{}{}
		}
	}

	seen := make(map[firstPlaceOverlapKey]struct{})
	overlaps := make([]interfaces.FirstPlaceOverlap, 0)

	for _, draw := range draws {
		main := draw.MainSet()

		for _, sub5 := range main.FiveSubsets() {
			// SECOND: (5 main + bonus) as a 6-set against other draws'
			// full first-place set.
			second := entities.NewCombination6From5AndBonus(sub5, draw.Bonus)
			for _, target := range first6ToDraws[second].sorted() {
				if target == draw.DrawNo {
					continue
				}
				key := firstPlaceOverlapKey{
					sourceDraw: draw.DrawNo,
					targetDraw: target,
					tier:       interfaces.OverlapTierSecond,
					numbers6:   second,
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				overlaps = append(overlaps, interfaces.FirstPlaceOverlap{
					SourceDraw:      draw.DrawNo,
					TargetDraw:      target,
					OverlapType:     interfaces.OverlapTierSecond,
					MatchingNumbers: second.Slice(),
				})
			}

			// THIRD: 5-of-6 main numbers against 5-subsets of other
			// draws' first-place sets.
			for _, target := range first5ToDraws[sub5].sorted() {
				if target == draw.DrawNo {
					continue
				}
				key := firstPlaceOverlapKey{
					sourceDraw: draw.DrawNo,
					targetDraw: target,
					tier:       interfaces.OverlapTierThird,
					numbers5:   sub5,
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				overlaps = append(overlaps, interfaces.FirstPlaceOverlap{
					SourceDraw:      draw.DrawNo,
					TargetDraw:      target,
					OverlapType:     interfaces.OverlapTierThird,
					MatchingNumbers: sub5.Slice(),
				})
			}
		}
	}

	sort.Slice(overlaps, func(i, j int) bool {
		a, b := overlaps[i], overlaps[j]
		if a.OverlapType != b.OverlapType {
			return a.OverlapType < b.OverlapType
		}
		if a.SourceDraw != b.SourceDraw {
			return a.SourceDraw < b.SourceDraw
		}
		if a.TargetDraw != b.TargetDraw {
			return a.TargetDraw < b.TargetDraw
		}
		return compareInts(a.MatchingNumbers, b.MatchingNumbers) < 0
	})

	return &interfaces.FirstPlaceOverlapReport{
		TotalDraws: len(draws),
		Overlaps:   overlaps,
	}, nil
}
