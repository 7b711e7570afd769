// Package tier builds the bitrate tier table and resolves which tier a
// measured bitrate falls into.
//
// A table consists of maxSteps finite tiers of stepMegabits each, plus one
// unbounded overflow tier that always matches. Labels are the cumulative
// megabit value zero-padded to the width of the largest finite label
// (step 5, 10 levels → "05MB" … "50MB", then "overflow"), so lexicographic
// and numeric order agree on disk.
package tier

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// OverflowLabel names the unbounded tier that catches every bitrate above
// the last finite bound.
const OverflowLabel = "overflow"

// Sentinel errors returned by New for invalid tier parameters.
var (
	ErrBadStep   = errors.New("tier: step must be greater than 0 Mbps")
	ErrBadLevels = errors.New("tier: levels must be at least 1")
)

// Level is one tier: a label and its inclusive upper bound in bits/sec.
// The last level of a table has Bound = +Inf.
type Level struct {
	Label string
	Bound float64
}

// Table is an immutable ordered tier list with strictly increasing bounds.
type Table struct {
	levels []Level
}

// New builds a table from the step size (in megabits) and the number of
// finite tiers.
func New(stepMegabits float64, maxSteps int) (*Table, error) {
	if stepMegabits <= 0 {
		return nil, ErrBadStep
	}
	if maxSteps < 1 {
		return nil, ErrBadLevels
	}

	width := len(strconv.Itoa(int(float64(maxSteps) * stepMegabits)))

	levels := make([]Level, 0, maxSteps+1)
	for i := 1; i <= maxSteps; i++ {
		mb := float64(i) * stepMegabits
		levels = append(levels, Level{
			Label: fmt.Sprintf("%0*dMB", width, int(mb)),
			Bound: mb * 1_000_000,
		})
	}
	levels = append(levels, Level{Label: OverflowLabel, Bound: math.Inf(1)})

	return &Table{levels: levels}, nil
}

// Resolve returns the label of the first tier whose bound is >= bitrate.
// A bitrate exactly on a bound resolves to that (lower) tier; the overflow
// tier guarantees a match for any finite bitrate.
func (t *Table) Resolve(bitrate float64) string {
	for _, lv := range t.levels {
		if bitrate <= lv.Bound {
			return lv.Label
		}
	}
	return t.levels[len(t.levels)-1].Label
}

// Labels returns all tier labels in ascending bound order.
func (t *Table) Labels() []string {
	out := make([]string, len(t.levels))
	for i, lv := range t.levels {
		out[i] = lv.Label
	}
	return out
}

// Levels returns a copy of the tier list.
func (t *Table) Levels() []Level {
	out := make([]Level, len(t.levels))
	copy(out, t.levels)
	return out
}
