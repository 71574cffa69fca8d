package entities

import (
	"fmt"
	"time"
)

// DrawRecord is one historical lottery outcome: 6 main numbers plus a
// bonus number, identified by a strictly increasing draw number.
// Records are created by the ingestion path and never mutated.
type DrawRecord struct {
	DrawNo    int64     `db:"draw_no"`
	Numbers   [6]int    `db:"-"` // stored as number1..number6
	Bonus     int       `db:"bonus_number"`
	CreatedAt time.Time `db:"created_at"`
}

// MainSet returns the normalized 6-set of the draw's main numbers.
func (d *DrawRecord) MainSet() Combination6 {
	c, err := NewCombination6(d.Numbers[:])
	if err != nil {
		// Records are validated on ingestion; a bad archive row is a
		// programming or data-corruption error, not a runtime condition.
		panic(fmt.Sprintf("invalid draw record %d: %v", d.DrawNo, err))
	}
	return c
}

// Validate checks the invariants the ingestion path must uphold before
// a record enters the archive.
func (d *DrawRecord) Validate() error {
	if d.DrawNo <= 0 {
		return fmt.Errorf("draw_no must be positive, got %d", d.DrawNo)
	}
	if _, err := NewCombination6(d.Numbers[:]); err != nil {
		return fmt.Errorf("main numbers: %w", err)
	}
	if d.Bonus < MinNumber || d.Bonus > MaxNumber {
		return fmt.Errorf("bonus number %d out of range [%d,%d]", d.Bonus, MinNumber, MaxNumber)
	}
	for _, n := range d.Numbers {
		if n == d.Bonus {
			return fmt.Errorf("bonus number %d duplicates a main number", d.Bonus)
		}
	}
	return nil
}
