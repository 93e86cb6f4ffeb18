package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Postgres-backed schedule store. The
// scheduled_case table carries a deferred uniqueness constraint on
// (theatre_id, case_date, list_order) so order swaps can be applied row by
// row inside one transaction.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const caseCols = `id, theatre_id, case_date, start_time, duration_minutes,
	procedure_name, specialty, complexity, team, list_order, status,
	equipment, requirements, notes, created_at, updated_at`

func scanCase(row pgx.Row) (*Case, error) {
	var c Case
	err := row.Scan(&c.ID, &c.TheatreID, &c.Date, &c.Start, &c.DurationMinutes,
		&c.ProcedureName, &c.Specialty, &c.Complexity, &c.Team, &c.ListOrder, &c.Status,
		&c.Equipment, &c.Requirements, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCaseNotFound
	}
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Case) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.Date = DayOf(c.Date)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO scheduled_case (id, theatre_id, case_date, start_time, duration_minutes,
			procedure_name, specialty, complexity, team, list_order, status,
			equipment, requirements, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		c.ID, c.TheatreID, c.Date, c.Start, c.DurationMinutes,
		c.ProcedureName, c.Specialty, c.Complexity, c.Team, c.ListOrder, c.Status,
		c.Equipment, c.Requirements, c.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(r.pool.QueryRow(ctx, `SELECT `+caseCols+` FROM scheduled_case WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, c *Case) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE scheduled_case SET team=$2, status=$3, equipment=$4, requirements=$5,
			notes=$6, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.Team, c.Status, c.Equipment, c.Requirements, c.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCaseNotFound
	}
	return nil
}

func (r *repoPG) queryCases(ctx context.Context, sql string, args ...interface{}) ([]*Case, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

const caseOrder = ` ORDER BY case_date, theatre_id, list_order`

func (r *repoPG) ListByTheatreDate(ctx context.Context, theatreID string, date time.Time) ([]*Case, error) {
	return r.queryCases(ctx, `SELECT `+caseCols+` FROM scheduled_case WHERE theatre_id = $1 AND case_date = $2`+caseOrder,
		theatreID, DayOf(date))
}

func (r *repoPG) ListByDate(ctx context.Context, date time.Time) ([]*Case, error) {
	return r.queryCases(ctx, `SELECT `+caseCols+` FROM scheduled_case WHERE case_date = $1`+caseOrder, DayOf(date))
}

func (r *repoPG) ListByTheatre(ctx context.Context, theatreID string) ([]*Case, error) {
	return r.queryCases(ctx, `SELECT `+caseCols+` FROM scheduled_case WHERE theatre_id = $1`+caseOrder, theatreID)
}

func (r *repoPG) ListAll(ctx context.Context) ([]*Case, error) {
	return r.queryCases(ctx, `SELECT `+caseCols+` FROM scheduled_case`+caseOrder)
}

func (r *repoPG) CompareAndSwapOrders(ctx context.Context, theatreID string, date time.Time, updates []OrderUpdate) error {
	day := DayOf(date)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, u := range updates {
		tag, err := tx.Exec(ctx, `
			UPDATE scheduled_case SET list_order=$4, updated_at=NOW()
			WHERE id=$1 AND theatre_id=$2 AND case_date=$3 AND list_order=$5`,
			u.CaseID, theatreID, day, u.ToOrder, u.FromOrder)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 1 {
			continue
		}
		// Work out which precondition failed so the caller gets the
		// right error from the taxonomy.
		var storedTheatre string
		var storedDate time.Time
		err = tx.QueryRow(ctx, `SELECT theatre_id, case_date FROM scheduled_case WHERE id = $1`,
			u.CaseID).Scan(&storedTheatre, &storedDate)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCaseNotFound
		}
		if err != nil {
			return err
		}
		if storedTheatre != theatreID || !DayOf(storedDate).Equal(day) {
			return ErrInvalidReorder
		}
		return ErrOrderConflict
	}
	return tx.Commit(ctx)
}
