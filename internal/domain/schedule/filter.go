package schedule

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/theatreops/theatreops/internal/platform/metrics"
)

// Filter is a conjunctive predicate set over the schedule store. Zero-value
// fields are inactive; every populated field must match.
type Filter struct {
	Surgeon      string     `json:"surgeon,omitempty" query:"surgeon"`
	Anaesthetist string     `json:"anaesthetist,omitempty" query:"anaesthetist"`
	TheatreID    string     `json:"theatre_id,omitempty" query:"theatre_id"`
	Specialty    string     `json:"specialty,omitempty" query:"specialty"`
	Procedure    string     `json:"procedure,omitempty" query:"procedure"`
	Status       Status     `json:"status,omitempty" query:"status"`
	Equipment    string     `json:"equipment,omitempty" query:"equipment"`
	Requirement  string     `json:"requirement,omitempty" query:"requirement"`
	Text         string     `json:"text,omitempty" query:"text"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
}

// Matches evaluates the conjunction against one case.
func (f Filter) Matches(c *Case) bool {
	if f.Surgeon != "" && c.Surgeon() != f.Surgeon {
		return false
	}
	if f.Anaesthetist != "" && c.Anaesthetist() != f.Anaesthetist {
		return false
	}
	if f.TheatreID != "" && c.TheatreID != f.TheatreID {
		return false
	}
	if f.Specialty != "" && c.Specialty != f.Specialty {
		return false
	}
	if f.Procedure != "" && c.ProcedureName != f.Procedure {
		return false
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Equipment != "" && !contains(c.Equipment, f.Equipment) {
		return false
	}
	if f.Requirement != "" && !contains(c.Requirements, f.Requirement) {
		return false
	}
	if f.Text != "" && !matchesText(c, f.Text) {
		return false
	}
	if f.From != nil {
		from := DayOf(*f.From)
		to := from
		if f.To != nil {
			to = DayOf(*f.To)
		}
		if c.Date.Before(from) || c.Date.After(to) {
			return false
		}
	}
	return true
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// matchesText is the free-text predicate: a case-insensitive substring test
// over a fixed, ordered field list. Any single hit matches.
func matchesText(c *Case, text string) bool {
	needle := strings.ToLower(text)
	fields := []string{c.ProcedureName, c.Specialty, c.Surgeon(), c.Anaesthetist()}
	fields = append(fields, c.Equipment...)
	fields = append(fields, c.Requirements...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Engine runs filter passes over store snapshots. Passes are pure: the
// snapshot is never mutated and identical queries over the same snapshot
// return identical, order-stable results. A pass that exceeds the latency
// budget is logged and counted but still returns its results.
type Engine struct {
	budget  time.Duration
	logger  zerolog.Logger
	metrics *metrics.Collector
}

// DefaultFilterBudget bounds a full pass over schedules of around 10^3-10^4
// cases.
const DefaultFilterBudget = 100 * time.Millisecond

func NewEngine(budget time.Duration, logger zerolog.Logger, m *metrics.Collector) *Engine {
	if budget <= 0 {
		budget = DefaultFilterBudget
	}
	return &Engine{budget: budget, logger: logger, metrics: m}
}

// Apply filters a snapshot and returns the matches sorted by date, theatre
// and ascending list order.
func (e *Engine) Apply(snapshot []*Case, f Filter) []*Case {
	start := time.Now()

	out := make([]*Case, 0, len(snapshot))
	for _, c := range snapshot {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	sortCases(out)

	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.FilterPassDuration.Observe(elapsed.Seconds())
	}
	if elapsed > e.budget {
		if e.metrics != nil {
			e.metrics.FilterBudgetOverrun.Inc()
		}
		e.logger.Warn().
			Dur("elapsed", elapsed).
			Dur("budget", e.budget).
			Int("snapshot_size", len(snapshot)).
			Int("matches", len(out)).
			Msg("filter pass exceeded latency budget")
	}
	return out
}
