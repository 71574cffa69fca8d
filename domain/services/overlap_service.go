package services

import (
	"context"
	"fmt"
	"sort"

	"lotto645/domain/entities"
	"lotto645/domain/interfaces"
)

// overlapService computes which derived prize combinations recur across
// two or more distinct draws, per tier and across tiers, plus the
// normalized percentage report.
type overlapService struct {
	repo interfaces.LottoResultRepository
}

// NewOverlapService creates an overlap analyzer over the draw archive.
func NewOverlapService(repo interfaces.LottoResultRepository) interfaces.OverlapAnalyzer {
	return &overlapService{repo: repo}
}

type drawNoSet map[int64]struct{}

func (s drawNoSet) sorted() []int64 {
	out := make([]int64, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// unionSize returns |a ∪ b|. Overlaps only count when the union of
// contributing draw numbers spans at least two distinct draws.
func unionSize(a, b drawNoSet) int {
	size := len(a)
	for n := range b {
		if _, ok := a[n]; !ok {
			size++
		}
	}
	return size
}

// Analyze walks the whole archive once, tracking per derived value the
// set of draw numbers that produced it, then reports every value seen
// in two or more distinct draws.
func (s *overlapService) Analyze(ctx context.Context) (*interfaces.OverlapReport, error) {
	draws, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load draw archive: %w", err)
	}

	firstToDraws := make(map[entities.Combination6]drawNoSet)
	firstSub5ToDraws := make(map[entities.Combination5]drawNoSet)
	secondToDraws := make(map[entities.Combination6]drawNoSet)
	// 5-subsets of every 2nd-tier 6-set: the single key space the
	// cross-tier comparison happens in.
	secondSub5ToDraws := make(map[entities.Combination5]drawNoSet)
	thirdToDraws := make(map[entities.Combination5]drawNoSet)

	add6 := func(m map[entities.Combination6]drawNoSet, key entities.Combination6, drawNo int64) {
		set, ok := m[key]
		if !ok {
			set = make(drawNoSet)
			m[key] = set
		}
		set[drawNo] = struct{}{}
	}
	add5 := func(m map[entities.Combination5]drawNoSet, key entities.Combination5, drawNo int64) {
		set, ok := m[key]
		if !ok {
			set = make(drawNoSet)
			m[key] = set
		}
		set[drawNo] = struct{}{}
	}

	for _, draw := range draws {
		main := draw.MainSet()
		add6(firstToDraws, main, draw.DrawNo)

		for _, sub5 := range main.FiveSubsets() {
			add5(firstSub5ToDraws, sub5, draw.DrawNo)
			add5(thirdToDraws, sub5, draw.DrawNo)

			second := entities.NewCombination6From5AndBonus(sub5, draw.Bonus)
			add6(secondToDraws, second, draw.DrawNo)
			for _, secondSub5 := range second.FiveSubsets() {
				add5(secondSub5ToDraws, secondSub5, draw.DrawNo)
			}
		}
	}

	report := &interfaces.OverlapReport{
		TotalDraws:          len(draws),
		FirstPrizeOverlaps:  collectOverlaps6(firstToDraws),
		SecondPrizeOverlaps: collectOverlaps6(secondToDraws),
		ThirdPrizeOverlaps:  collectOverlaps5(thirdToDraws),
		CrossOverlaps:       collectCrossOverlaps(thirdToDraws, secondSub5ToDraws),
	}
	report.Percentages = computePercentages(report,
		firstToDraws, firstSub5ToDraws, secondToDraws, secondSub5ToDraws, thirdToDraws)

	return report, nil
}

// collectOverlaps6 reports every 6-set produced by two or more distinct
// draws, sorted by numbers then by contributing draw list.
func collectOverlaps6(m map[entities.Combination6]drawNoSet) []interfaces.OverlapEntry {
	entries := make([]interfaces.OverlapEntry, 0)
	for combo, drawNos := range m {
		if len(drawNos) < 2 {
			continue
		}
		entries = append(entries, interfaces.OverlapEntry{
			Numbers: combo.Slice(),
			Draws:   drawNos.sorted(),
		})
	}
	sortOverlapEntries(entries)
	return entries
}

func collectOverlaps5(m map[entities.Combination5]drawNoSet) []interfaces.OverlapEntry {
	entries := make([]interfaces.OverlapEntry, 0)
	for combo, drawNos := range m {
		if len(drawNos) < 2 {
			continue
		}
		entries = append(entries, interfaces.OverlapEntry{
			Numbers: combo.Slice(),
			Draws:   drawNos.sorted(),
		})
	}
	sortOverlapEntries(entries)
	return entries
}

func sortOverlapEntries(entries []interfaces.OverlapEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if c := compareInts(entries[i].Numbers, entries[j].Numbers); c != 0 {
			return c < 0
		}
		return compareInt64s(entries[i].Draws, entries[j].Draws) < 0
	})
}

// collectCrossOverlaps reports every 5-set that is both a 3rd-tier
// derivation of some draw and a 5-subset of a 2nd-tier derivation of
// some draw, provided the union of contributing draws spans at least
// two distinct draw numbers.
func collectCrossOverlaps(
	thirdToDraws map[entities.Combination5]drawNoSet,
	secondSub5ToDraws map[entities.Combination5]drawNoSet,
) []interfaces.CrossOverlapEntry {
	entries := make([]interfaces.CrossOverlapEntry, 0)
	for combo, thirdDraws := range thirdToDraws {
		secondDraws, ok := secondSub5ToDraws[combo]
		if !ok {
			continue
		}
		if unionSize(secondDraws, thirdDraws) <= 1 {
			continue
		}
		entries = append(entries, interfaces.CrossOverlapEntry{
			Numbers:     combo.Slice(),
			SecondDraws: secondDraws.sorted(),
			ThirdDraws:  thirdDraws.sorted(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if c := compareInts(entries[i].Numbers, entries[j].Numbers); c != 0 {
			return c < 0
		}
		if c := compareInt64s(entries[i].SecondDraws, entries[j].SecondDraws); c != 0 {
			return c < 0
		}
		return compareInt64s(entries[i].ThirdDraws, entries[j].ThirdDraws) < 0
	})
	return entries
}

// computePercentages derives the five named ratios, each normalized by
// the unique combination count of its denominator tier and guarded
// against empty tiers.
func computePercentages(
	report *interfaces.OverlapReport,
	firstToDraws map[entities.Combination6]drawNoSet,
	firstSub5ToDraws map[entities.Combination5]drawNoSet,
	secondToDraws map[entities.Combination6]drawNoSet,
	secondSub5ToDraws map[entities.Combination5]drawNoSet,
	thirdToDraws map[entities.Combination5]drawNoSet,
) interfaces.OverlapPercentages {
	uniqueFirst := len(firstToDraws)
	uniqueSecond := len(secondToDraws)
	uniqueThird := len(thirdToDraws)

	secondVsFirst := 0
	for combo, secondDraws := range secondToDraws {
		firstDraws, ok := firstToDraws[combo]
		if !ok {
			continue
		}
		if unionSize(secondDraws, firstDraws) > 1 {
			secondVsFirst++
		}
	}

	thirdVsFirst := 0
	for combo, thirdDraws := range thirdToDraws {
		firstDraws, ok := firstSub5ToDraws[combo]
		if !ok {
			continue
		}
		if unionSize(thirdDraws, firstDraws) > 1 {
			thirdVsFirst++
		}
	}

	thirdVsSecond := 0
	for combo, thirdDraws := range thirdToDraws {
		secondDraws, ok := secondSub5ToDraws[combo]
		if !ok {
			continue
		}
		if unionSize(thirdDraws, secondDraws) > 1 {
			thirdVsSecond++
		}
	}

	pct := func(n, d int) float64 {
		if d == 0 {
			return 0
		}
		return float64(n) / float64(d) * 100.0
	}

	counts := interfaces.OverlapCounts{
		FirstVsFirst:   len(report.FirstPrizeOverlaps),
		SecondVsFirst:  secondVsFirst,
		SecondVsSecond: len(report.SecondPrizeOverlaps),
		ThirdVsFirst:   thirdVsFirst,
		ThirdVsSecond:  thirdVsSecond,
	}

	return interfaces.OverlapPercentages{
		Denominators: interfaces.OverlapDenominators{
			UniqueFirst:  uniqueFirst,
			UniqueSecond: uniqueSecond,
			UniqueThird:  uniqueThird,
		},
		Counts: counts,
		Percent: interfaces.OverlapPercents{
			FirstVsFirst:   pct(counts.FirstVsFirst, uniqueFirst),
			SecondVsFirst:  pct(counts.SecondVsFirst, uniqueSecond),
			SecondVsSecond: pct(counts.SecondVsSecond, uniqueSecond),
			ThirdVsFirst:   pct(counts.ThirdVsFirst, uniqueThird),
			ThirdVsSecond:  pct(counts.ThirdVsSecond, uniqueThird),
		},
	}
}

// compareInts lexicographically compares two int slices.
func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}

// compareInt64s lexicographically compares two int64 slices.
func compareInt64s(a, b []int64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return len(a) - len(b)
}
