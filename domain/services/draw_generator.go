package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"lotto645/apperrors"
	"lotto645/domain/entities"
	"lotto645/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxRetries bounds the rejection-sampling loop.
	DefaultMaxRetries = 50_000

	// MaxFixedNumbers caps how many numbers a caller may pin into the
	// result.
	MaxFixedNumbers = 2

	// MaxExcludeNumbers keeps at least 6 numbers drawable.
	MaxExcludeNumbers = 39

	// MaxDrawCount caps a single GenerateMany request.
	MaxDrawCount = 50
)

// drawGenerator implements rejection sampling against the historical
// exclusion index and the request's filters.
type drawGenerator struct {
	index      *ExclusionIndex
	maxRetries int

	// rand.Rand is not safe for concurrent use; draw generation may be
	// called from many requests at once.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewDrawGenerator creates a draw generator over the given exclusion
// index. rng may be nil, in which case a time-seeded source is used;
// tests pass a fixed-seed source for reproducibility. maxRetries <= 0
// selects DefaultMaxRetries.
func NewDrawGenerator(index *ExclusionIndex, rng *rand.Rand, maxRetries int) interfaces.DrawGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &drawGenerator{
		index:      index,
		maxRetries: maxRetries,
		rng:        rng,
	}
}

// generatePlan is a fully validated request: no sampling happens until
// one of these has been built.
type generatePlan struct {
	mode         entities.ExcludeMode
	fixed        []int
	population   []int
	excludeDraws map[entities.Combination6]struct{}

	consecutive entities.ConsecutiveMode
	lastDigit   entities.LastDigitMode

	rangeLow   int
	rangeHigh  int
	rangeMin   int
	rangeMax   int
	rangeCheck bool

	maxPrevOverlap *int
}

// Generate returns one sorted 6-number set satisfying every filter in
// the request, a ValidationError before any sampling for malformed
// input, or a GenerationFailedError when the retry budget runs out.
func (g *drawGenerator) Generate(ctx context.Context, req interfaces.GenerateRequest) ([]int, error) {
	plan, err := buildPlan(req)
	if err != nil {
		return nil, err
	}

	sets, err := g.index.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < g.maxRetries; attempt++ {
		candidate := g.sample(plan)
		if plan.accepts(candidate, sets) {
			return candidate.Slice(), nil
		}
	}

	log.WithFields(log.Fields{
		"excludeMode": plan.mode,
		"maxRetries":  g.maxRetries,
	}).Warn("Draw generation exhausted retry budget")

	return nil, &apperrors.GenerationFailedError{Attempts: g.maxRetries}
}

// GenerateMany repeats Generate count times. Each draw is independent;
// there is no cross-draw deduplication beyond what the request's
// exclude_draws already encodes.
func (g *drawGenerator) GenerateMany(ctx context.Context, req interfaces.GenerateRequest, count int) ([][]int, error) {
	if count < 1 || count > MaxDrawCount {
		return nil, apperrors.NewValidation(
			"Invalid count", "count",
			fmt.Sprintf("Must be between 1 and %d", MaxDrawCount))
	}

	draws := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		numbers, err := g.Generate(ctx, req)
		if err != nil {
			return nil, err
		}
		draws = append(draws, numbers)
	}
	return draws, nil
}

// sample draws the remaining numbers uniformly without replacement from
// the eligible population via a partial Fisher-Yates shuffle, unions
// the fixed numbers, and normalizes.
func (g *drawGenerator) sample(plan *generatePlan) entities.Combination6 {
	need := entities.DrawSize - len(plan.fixed)

	g.mu.Lock()
	pool := make([]int, len(plan.population))
	copy(pool, plan.population)
	for i := 0; i < need; i++ {
		j := i + g.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	g.mu.Unlock()

	var c entities.Combination6
	copy(c[:], pool[:need])
	copy(c[need:], plan.fixed)
	sort.Ints(c[:])
	return c
}

// accepts runs every rejection check against a candidate, in order:
// explicit excluded draws, historical tier membership, then the
// advanced-option predicates.
func (p *generatePlan) accepts(c entities.Combination6, sets *ExclusionSets) bool {
	if _, excluded := p.excludeDraws[c]; excluded {
		return false
	}

	mode := p.mode
	if mode == entities.ExcludeModeFirst || mode == entities.ExcludeModeAll {
		if _, hit := sets.FirstPlace[c]; hit {
			return false
		}
	}
	if mode == entities.ExcludeModeSecond || mode == entities.ExcludeModeAll {
		if _, hit := sets.SecondPlace[c]; hit {
			return false
		}
	}
	if mode == entities.ExcludeModeThird || mode == entities.ExcludeModeAll {
		for _, sub5 := range c.FiveSubsets() {
			if _, hit := sets.ThirdPlace[sub5]; hit {
				return false
			}
		}
	}

	if p.consecutive != entities.ConsecutiveAllow {
		hasAdjacent := false
		for i := 0; i < len(c)-1; i++ {
			if c[i+1]-c[i] == 1 {
				hasAdjacent = true
				break
			}
		}
		if p.consecutive == entities.ConsecutiveRequire && !hasAdjacent {
			return false
		}
		if p.consecutive == entities.ConsecutiveForbid && hasAdjacent {
			return false
		}
	}

	if p.lastDigit == entities.LastDigitForbid {
		var digits [10]bool
		for _, n := range c {
			d := n % 10
			if digits[d] {
				return false
			}
			digits[d] = true
		}
	}

	if p.rangeCheck {
		inBucket := 0
		for _, n := range c {
			if n >= p.rangeLow && n <= p.rangeHigh {
				inBucket++
			}
		}
		if inBucket < p.rangeMin || inBucket > p.rangeMax {
			return false
		}
	}

	if p.maxPrevOverlap != nil && sets.LatestDraw != nil {
		if sets.LatestDraw.Overlap(c) > *p.maxPrevOverlap {
			return false
		}
	}

	return true
}

// buildPlan validates the whole request up front. Any violation reports
// a ValidationError with field details, before a single number has been
// sampled.
func buildPlan(req interfaces.GenerateRequest) (*generatePlan, error) {
	mode, err := entities.ParseExcludeMode(string(req.ExcludeMode))
	if err != nil {
		return nil, apperrors.NewValidation(
			"Invalid exclude_mode", "exclude_mode",
			"Must be one of NONE|FIRST|SECOND|THIRD|ALL")
	}

	excludeSet := make(map[int]bool, len(req.ExcludeNumbers))
	for _, n := range req.ExcludeNumbers {
		if n < entities.MinNumber || n > entities.MaxNumber {
			return nil, apperrors.NewValidation(
				"Invalid exclude_numbers", "exclude_numbers",
				"All numbers must be within 1..45")
		}
		excludeSet[n] = true
	}
	if len(excludeSet) > MaxExcludeNumbers {
		return nil, apperrors.NewValidation(
			"Invalid exclude_numbers", "exclude_numbers",
			fmt.Sprintf("Too many excluded numbers (must be <= %d)", MaxExcludeNumbers))
	}

	fixedSet := make(map[int]bool, len(req.FixedNumbers))
	for _, n := range req.FixedNumbers {
		if n < entities.MinNumber || n > entities.MaxNumber {
			return nil, apperrors.NewValidation(
				"Invalid fixed_numbers", "fixed_numbers",
				"All numbers must be within 1..45")
		}
		if excludeSet[n] {
			return nil, apperrors.NewValidation(
				"Invalid fixed_numbers", "fixed_numbers",
				fmt.Sprintf("Number %d is both fixed and excluded", n))
		}
		fixedSet[n] = true
	}
	if len(fixedSet) > MaxFixedNumbers {
		return nil, apperrors.NewValidation(
			"Invalid fixed_numbers", "fixed_numbers",
			fmt.Sprintf("At most %d fixed numbers allowed", MaxFixedNumbers))
	}
	fixed := make([]int, 0, len(fixedSet))
	for n := range fixedSet {
		fixed = append(fixed, n)
	}
	sort.Ints(fixed)

	population := make([]int, 0, entities.MaxNumber)
	for n := entities.MinNumber; n <= entities.MaxNumber; n++ {
		if !excludeSet[n] && !fixedSet[n] {
			population = append(population, n)
		}
	}
	if len(population) < entities.DrawSize-len(fixed) {
		return nil, apperrors.NewValidation(
			"Invalid exclude_numbers", "exclude_numbers",
			"Not enough numbers left to draw 6")
	}

	excludeDraws := make(map[entities.Combination6]struct{}, len(req.ExcludeDraws))
	for _, numbers := range req.ExcludeDraws {
		combo, err := entities.NewCombination6(numbers)
		if err != nil {
			return nil, apperrors.NewValidation(
				"Invalid exclude_draws", "exclude_draws", err.Error())
		}
		excludeDraws[combo] = struct{}{}
	}

	plan := &generatePlan{
		mode:         mode,
		fixed:        fixed,
		population:   population,
		excludeDraws: excludeDraws,
		consecutive:  entities.ConsecutiveAllow,
		lastDigit:    entities.LastDigitAllow,
	}

	if req.Advanced != nil {
		if err := applyAdvanced(plan, req.Advanced); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

func applyAdvanced(plan *generatePlan, adv *interfaces.AdvancedOptions) error {
	consecutive, err := entities.ParseConsecutiveMode(string(adv.Consecutive))
	if err != nil {
		return apperrors.NewValidation(
			"Invalid advanced_options", "consecutive_mode",
			"Must be one of ALLOW|REQUIRE|FORBID")
	}
	plan.consecutive = consecutive

	lastDigit, err := entities.ParseLastDigitMode(string(adv.LastDigit))
	if err != nil {
		return apperrors.NewValidation(
			"Invalid advanced_options", "last_digit_mode",
			"Must be one of ALLOW|FORBID")
	}
	plan.lastDigit = lastDigit

	if adv.Range != nil && adv.Range.Enabled {
		low, high, ok := adv.Range.Bucket.Bounds()
		if !ok {
			return apperrors.NewValidation(
				"Invalid advanced_options", "range_filter",
				"Bucket must be one of 1-10|11-20|21-30|31-40|41-45")
		}
		if adv.Range.MinCount < 0 || adv.Range.MaxCount > entities.DrawSize ||
			adv.Range.MinCount > adv.Range.MaxCount {
			return apperrors.NewValidation(
				"Invalid advanced_options", "range_filter",
				"min_count and max_count must satisfy 0 <= min <= max <= 6")
		}
		plan.rangeCheck = true
		plan.rangeLow = low
		plan.rangeHigh = high
		plan.rangeMin = adv.Range.MinCount
		plan.rangeMax = adv.Range.MaxCount
	}

	if adv.MaxPreviousOverlap != nil {
		if *adv.MaxPreviousOverlap < 0 || *adv.MaxPreviousOverlap > entities.DrawSize {
			return apperrors.NewValidation(
				"Invalid advanced_options", "max_previous_draw_overlap",
				"Must be between 0 and 6")
		}
		plan.maxPrevOverlap = adv.MaxPreviousOverlap
	}

	return nil
}
