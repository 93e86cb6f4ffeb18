package schedule

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/theatreops/theatreops/internal/domain/catalog"
	"github.com/theatreops/theatreops/internal/domain/theatre"
)

// AllocatorConfig carries the day-shape policy for schedule generation.
// Minutes are offsets from midnight, so the default window 08:00-18:00 is
// {480, 1080}.
type AllocatorConfig struct {
	DayStartMinutes int
	DayEndMinutes   int
	TurnoverMinutes int

	WeekdayMinCases int
	WeekdayMaxCases int

	// RestDay produces no cases at all; ReducedDay caps both the number
	// of theatres running and the number of cases per theatre.
	RestDay                time.Weekday
	ReducedDay             time.Weekday
	ReducedDayMaxCases     int
	ReducedDayMaxTheatres  int

	// MaxEquipment and MaxRequirements bound the random tag subsets.
	MaxEquipment    int
	MaxRequirements int
}

// DefaultAllocatorConfig mirrors a typical NHS elective list: 08:00-18:00
// window, 30 minute turnover, 2-4 weekday cases, Sundays off, reduced
// Saturdays.
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{
		DayStartMinutes:       8 * 60,
		DayEndMinutes:         18 * 60,
		TurnoverMinutes:       30,
		WeekdayMinCases:       2,
		WeekdayMaxCases:       4,
		RestDay:               time.Sunday,
		ReducedDay:            time.Saturday,
		ReducedDayMaxCases:    2,
		ReducedDayMaxTheatres: 2,
		MaxEquipment:          3,
		MaxRequirements:       2,
	}
}

// Allocator produces conflict-free, fully staffed case lists per
// theatre-day. All randomness flows through the *rand.Rand handed to
// Generate, so a fixed seed reproduces the identical schedule.
type Allocator struct {
	cfg AllocatorConfig
}

func NewAllocator(cfg AllocatorConfig) *Allocator {
	return &Allocator{cfg: cfg}
}

// Generate walks every calendar day in [from, to] and every registered
// theatre, producing the cases for each theatre-day. Theatre-days that
// cannot be staffed contribute an *AllocationError and are skipped; the
// remaining days are still generated.
func (a *Allocator) Generate(from, to time.Time, reg *theatre.Registry, pools *catalog.Pools, rng *rand.Rand) ([]*Case, []error) {
	var cases []*Case
	var errs []error

	for day := DayOf(from); !day.After(DayOf(to)); day = day.AddDate(0, 0, 1) {
		if day.Weekday() == a.cfg.RestDay {
			continue
		}
		theatres := reg.Theatres()
		maxCases := a.cfg.WeekdayMaxCases
		minCases := a.cfg.WeekdayMinCases
		if day.Weekday() == a.cfg.ReducedDay {
			if len(theatres) > a.cfg.ReducedDayMaxTheatres {
				theatres = theatres[:a.cfg.ReducedDayMaxTheatres]
			}
			if maxCases > a.cfg.ReducedDayMaxCases {
				maxCases = a.cfg.ReducedDayMaxCases
			}
			if minCases > maxCases {
				minCases = maxCases
			}
		}
		for _, t := range theatres {
			target := minCases
			if maxCases > minCases {
				target += rng.Intn(maxCases - minCases + 1)
			}
			dayCases, err := a.generateDay(t, day, target, pools, rng)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			cases = append(cases, dayCases...)
		}
	}
	return cases, errs
}

// generateDay fills one theatre-day. It either returns a complete, staffed,
// non-overlapping list or an *AllocationError — never a partially staffed
// day.
func (a *Allocator) generateDay(t theatre.Theatre, day time.Time, target int, pools *catalog.Pools, rng *rand.Rand) ([]*Case, error) {
	procedures := pools.ProceduresForSpecialty(t.Specialty)
	if len(procedures) == 0 {
		return nil, &AllocationError{TheatreID: t.ID, Date: day,
			Reason: fmt.Sprintf("no procedures in %s catalog", t.Specialty)}
	}
	staff := make(map[catalog.Role][]*catalog.StaffMember, len(catalog.RequiredRoles))
	for _, role := range catalog.RequiredRoles {
		pool := pools.StaffByRole(role, t.Specialty)
		if len(pool) == 0 {
			return nil, &AllocationError{TheatreID: t.ID, Date: day,
				Reason: fmt.Sprintf("no eligible %s for %s", role, t.Specialty)}
		}
		staff[role] = pool
	}

	windowClose := day.Add(time.Duration(a.cfg.DayEndMinutes) * time.Minute)
	cursor := day.Add(time.Duration(a.cfg.DayStartMinutes) * time.Minute)

	var cases []*Case
	for len(cases) < target {
		// A case starting at or past window close is truncated, not
		// allowed to overrun.
		if !cursor.Before(windowClose) {
			break
		}
		proc := procedures[rng.Intn(len(procedures))]
		team := make(map[catalog.Role]string, len(catalog.RequiredRoles))
		for _, role := range catalog.RequiredRoles {
			pool := staff[role]
			team[role] = pool[rng.Intn(len(pool))].Name
		}
		c := &Case{
			TheatreID:       t.ID,
			Date:            day,
			Start:           cursor,
			DurationMinutes: proc.DurationMinutes,
			ProcedureName:   proc.Name,
			Specialty:       t.Specialty,
			Complexity:      proc.Complexity,
			Team:            team,
			ListOrder:       len(cases) + 1,
			Status:          StatusScheduled,
			Equipment:       pickTags(pools.EquipmentForSpecialty(t.Specialty), a.cfg.MaxEquipment, rng),
			Requirements:    pickTags(pools.RequirementsForSpecialty(t.Specialty), a.cfg.MaxRequirements, rng),
		}
		cases = append(cases, c)
		cursor = cursor.Add(time.Duration(proc.DurationMinutes+a.cfg.TurnoverMinutes) * time.Minute)
	}
	return cases, nil
}

// pickTags draws a bounded random subset of tags, preserving catalog order.
func pickTags(tags []string, max int, rng *rand.Rand) []string {
	if len(tags) == 0 || max <= 0 {
		return nil
	}
	n := rng.Intn(max+1)
	if n > len(tags) {
		n = len(tags)
	}
	if n == 0 {
		return nil
	}
	picked := make(map[int]bool, n)
	for len(picked) < n {
		picked[rng.Intn(len(tags))] = true
	}
	var out []string
	for i, tag := range tags {
		if picked[i] {
			out = append(out, tag)
		}
	}
	return out
}
