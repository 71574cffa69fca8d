package interfaces

import (
	"context"

	"lotto645/domain/entities"
	"lotto645/events"
)

// RangeFilter constrains how many result numbers may fall into one
// decade bucket.
type RangeFilter struct {
	Enabled  bool
	Bucket   entities.RangeBucket
	MinCount int
	MaxCount int
}

// AdvancedOptions bundles the optional generation predicates. The zero
// value (ALLOW/ALLOW, no range filter, no overlap cap) disables all of
// them.
type AdvancedOptions struct {
	Consecutive        entities.ConsecutiveMode
	LastDigit          entities.LastDigitMode
	Range              *RangeFilter
	MaxPreviousOverlap *int
}

// GenerateRequest describes one constrained draw.
type GenerateRequest struct {
	ExcludeMode    entities.ExcludeMode
	ExcludeNumbers []int
	FixedNumbers   []int
	ExcludeDraws   [][]int
	Advanced       *AdvancedOptions
}

// DrawGenerator produces filter-satisfying 6-number sets by rejection
// sampling against the historical exclusion index.
type DrawGenerator interface {
	// Generate returns one sorted 6-number set, a ValidationError for
	// malformed input, or a GenerationFailedError when the retry budget
	// is exhausted.
	Generate(ctx context.Context, req GenerateRequest) ([]int, error)

	// GenerateMany repeats Generate count times (1..50), each draw
	// independent, results in request order.
	GenerateMany(ctx context.Context, req GenerateRequest, count int) ([][]int, error)
}

// OverlapEntry is one combination that recurred across two or more
// distinct draws within a single tier.
type OverlapEntry struct {
	Numbers []int   `json:"numbers"`
	Draws   []int64 `json:"draws"`
}

// CrossOverlapEntry is a 5-set produced both as a third-tier derivation
// and as a 5-subset of a second-tier derivation, across >= 2 draws.
type CrossOverlapEntry struct {
	Numbers     []int   `json:"numbers"`
	SecondDraws []int64 `json:"second_draws"`
	ThirdDraws  []int64 `json:"third_draws"`
}

// OverlapDenominators carries the unique-combination counts each
// percentage is normalized by.
type OverlapDenominators struct {
	UniqueFirst  int `json:"unique_1st_place_combinations"`
	UniqueSecond int `json:"unique_2nd_place_combinations"`
	UniqueThird  int `json:"unique_3rd_place_combinations"`
}

// OverlapCounts carries the qualifying-combination counts per ratio.
type OverlapCounts struct {
	FirstVsFirst   int `json:"1st_overlapping_other_1st"`
	SecondVsFirst  int `json:"2nd_overlapping_other_1st"`
	SecondVsSecond int `json:"2nd_overlapping_other_2nd"`
	ThirdVsFirst   int `json:"3rd_overlapping_other_1st"`
	ThirdVsSecond  int `json:"3rd_overlapping_other_2nd"`
}

// OverlapPercents carries the five normalized ratios, each 0 when its
// denominator tier is empty.
type OverlapPercents struct {
	FirstVsFirst   float64 `json:"1st_overlapping_other_1st"`
	SecondVsFirst  float64 `json:"2nd_overlapping_other_1st"`
	SecondVsSecond float64 `json:"2nd_overlapping_other_2nd"`
	ThirdVsFirst   float64 `json:"3rd_overlapping_other_1st"`
	ThirdVsSecond  float64 `json:"3rd_overlapping_other_2nd"`
}

// OverlapPercentages groups denominators, counts and percents.
type OverlapPercentages struct {
	Denominators OverlapDenominators `json:"denominators"`
	Counts       OverlapCounts       `json:"counts"`
	Percent      OverlapPercents     `json:"percent"`
}

// OverlapReport is the full cross-draw overlap analysis output.
type OverlapReport struct {
	TotalDraws          int                 `json:"total_draws"`
	FirstPrizeOverlaps  []OverlapEntry      `json:"overlapping_1st_prize_combinations"`
	SecondPrizeOverlaps []OverlapEntry      `json:"overlapping_2nd_prize_combinations"`
	ThirdPrizeOverlaps  []OverlapEntry      `json:"overlapping_3rd_prize_combinations"`
	CrossOverlaps       []CrossOverlapEntry `json:"cross_overlaps_2nd_vs_3rd"`
	Percentages         OverlapPercentages  `json:"overlap_percentages"`
}

// OverlapAnalyzer computes cross-draw overlap statistics for the whole
// archive.
type OverlapAnalyzer interface {
	Analyze(ctx context.Context) (*OverlapReport, error)
}

// OverlapTier tags which derivation matched a first-place set.
type OverlapTier string

const (
	OverlapTierSecond OverlapTier = "SECOND"
	OverlapTierThird  OverlapTier = "THIRD"
)

// FirstPlaceOverlap is one (source draw, target draw, tier, numbers)
// match of a derived set against another draw's first-place numbers.
type FirstPlaceOverlap struct {
	SourceDraw      int64       `json:"source_draw"`
	TargetDraw      int64       `json:"target_draw"`
	OverlapType     OverlapTier `json:"overlap_type"`
	MatchingNumbers []int       `json:"matching_numbers"`
}

// FirstPlaceOverlapReport is the companion-variant output.
type FirstPlaceOverlapReport struct {
	TotalDraws int                 `json:"total_draws"`
	Overlaps   []FirstPlaceOverlap `json:"overlaps"`
}

// FirstPlaceOverlapAnalyzer matches 2nd/3rd tier derivations against
// other draws' first-place sets only.
type FirstPlaceOverlapAnalyzer interface {
	Analyze(ctx context.Context) (*FirstPlaceOverlapReport, error)
}

// FrequencyReport maps every number 1..45 to its occurrence count plus
// the derived hot/cold buckets.
type FrequencyReport struct {
	TotalDrawsInArchive int         `json:"total_draws_in_db"`
	DrawsUsed           int         `json:"draws_used"`
	RecentN             *int        `json:"recent_n"`
	Percent             float64     `json:"percent"`
	Counts              map[int]int `json:"counts"`
	MinCount            int         `json:"min_count"`
	MaxCount            int         `json:"max_count"`
	ColdNumbers         []int       `json:"cold_numbers"`
	HotNumbers          []int       `json:"hot_numbers"`
	NonColdNumbers      []int       `json:"exclude_numbers_for_only_cold"`
}

// FrequencyAnalyzer counts per-number appearances over all or the most
// recent N draws. recentN nil means the whole archive; percent 0 means
// the default bucket size of 0.2.
type FrequencyAnalyzer interface {
	Analyze(ctx context.Context, recentN *int, percent float64) (*FrequencyReport, error)
}

// EventPublisher publishes domain events to the in-process bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
