package nick

import (
	"fmt"
	"math"
	"nick-lab/errors"
	"strings"
)

// Policy tells how two values of the same field are combined when nicks are merged.
type Policy int

const (
	// PolicySum is used for cumulative stats (wins, games played...).
	PolicySum Policy = iota
	// PolicyMax is used for rates and timestamps, where the latest value wins.
	PolicyMax
)

func (p Policy) String() string {
	switch p {
	case PolicySum:
		return "sum"
	case PolicyMax:
		return "max"
	default:
		return "unknown"
	}
}

// Combine applies the policy to the duplicate and primary values.
// A sum that does not fit in an int64 fails with errors.ErrValueOverflow.
func (p Policy) Combine(duplicate, primary int64) (int64, error) {
	if p == PolicyMax {
		return max(duplicate, primary), nil
	}
	if (primary > 0 && duplicate > math.MaxInt64-primary) ||
		(primary < 0 && duplicate < math.MinInt64-primary) {
		return 0, fmt.Errorf("%w: %d + %d", errors.ErrValueOverflow, duplicate, primary)
	}
	return duplicate + primary, nil
}

type Field struct {
	Name   string
	Policy Policy
}

// FieldSet is the ordered list of fields merged by nickmerge.
// Any field missing from the set is left untouched by a merge.
type FieldSet []Field

var DefaultStatFields = []string{
	"bomb_wrongs",
	"bomb_timeouts",
	"bomb_defuses",
	"bomb_alls",
	"bombs_planted",
	"duel_wins",
	"duel_wins_streak_record",
	"duel_losses",
	"duel_losses_streak_record",
	"rep_score",
	"roulette_games",
	"roulette_wins",
}

var DefaultRateFields = []string{
	"bomb_last_planted",
	"duel_last",
	"rep_used",
	"roulette_last",
}

// NewFieldSet builds the stats first, then the rates. Blank names are skipped.
// A name given twice keeps its first position and takes the last policy seen.
func NewFieldSet(stats, rates []string) FieldSet {
	var set FieldSet
	position := make(map[string]int)
	add := func(name string, policy Policy) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if i, ok := position[name]; ok {
			set[i].Policy = policy
			return
		}
		position[name] = len(set)
		set = append(set, Field{Name: name, Policy: policy})
	}
	for _, name := range stats {
		add(name, PolicySum)
	}
	for _, name := range rates {
		add(name, PolicyMax)
	}
	return set
}

func DefaultFieldSet() FieldSet {
	return NewFieldSet(DefaultStatFields, DefaultRateFields)
}

func (s FieldSet) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}
	return names
}
