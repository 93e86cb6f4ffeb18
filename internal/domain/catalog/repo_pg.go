package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type staffRepoPG struct{ pool *pgxpool.Pool }

// NewStaffRepoPG returns a Postgres-backed StaffRepository.
func NewStaffRepoPG(pool *pgxpool.Pool) StaffRepository { return &staffRepoPG{pool: pool} }

const staffCols = `id, name, role, specialty, shift_start, shift_end,
	latitude, longitude, rating, created_at, updated_at`

func scanStaff(row pgx.Row) (*StaffMember, error) {
	var s StaffMember
	err := row.Scan(&s.ID, &s.Name, &s.Role, &s.Specialty, &s.ShiftStart, &s.ShiftEnd,
		&s.Latitude, &s.Longitude, &s.Rating, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &s, err
}

func (r *staffRepoPG) Create(ctx context.Context, s *StaffMember) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO staff_member (id, name, role, specialty, shift_start, shift_end, latitude, longitude, rating)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		s.ID, s.Name, s.Role, s.Specialty, s.ShiftStart, s.ShiftEnd, s.Latitude, s.Longitude, s.Rating)
	return err
}

func (r *staffRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*StaffMember, error) {
	return scanStaff(r.pool.QueryRow(ctx, `SELECT `+staffCols+` FROM staff_member WHERE id = $1`, id))
}

func (r *staffRepoPG) List(ctx context.Context, limit, offset int) ([]*StaffMember, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM staff_member`).Scan(&total); err != nil {
		return nil, 0, err
	}
	// limit <= 0 means no page bound (used by matching's full-pool ranking).
	rows, err := r.pool.Query(ctx, `SELECT `+staffCols+` FROM staff_member ORDER BY name LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, rows.Err()
}

func (r *staffRepoPG) ListByRole(ctx context.Context, role Role) ([]*StaffMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+staffCols+` FROM staff_member WHERE role = $1 ORDER BY name`, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StaffMember
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}

type procedureRepoPG struct{ pool *pgxpool.Pool }

// NewProcedureRepoPG returns a Postgres-backed ProcedureRepository.
func NewProcedureRepoPG(pool *pgxpool.Pool) ProcedureRepository { return &procedureRepoPG{pool: pool} }

const procCols = `id, name, specialty, duration_minutes, complexity, created_at, updated_at`

func scanProcedure(row pgx.Row) (*Procedure, error) {
	var p Procedure
	err := row.Scan(&p.ID, &p.Name, &p.Specialty, &p.DurationMinutes, &p.Complexity, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return &p, err
}

func (r *procedureRepoPG) Create(ctx context.Context, p *Procedure) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO procedure (id, name, specialty, duration_minutes, complexity)
		VALUES ($1,$2,$3,$4,$5)`,
		p.ID, p.Name, p.Specialty, p.DurationMinutes, p.Complexity)
	return err
}

func (r *procedureRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Procedure, error) {
	return scanProcedure(r.pool.QueryRow(ctx, `SELECT `+procCols+` FROM procedure WHERE id = $1`, id))
}

func (r *procedureRepoPG) List(ctx context.Context, limit, offset int) ([]*Procedure, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM procedure`).Scan(&total); err != nil {
		return nil, 0, err
	}
	// limit <= 0 means no page bound (used by pool snapshots).
	rows, err := r.pool.Query(ctx, `SELECT `+procCols+` FROM procedure ORDER BY name LIMIT NULLIF($1, 0) OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Procedure
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *procedureRepoPG) ListBySpecialty(ctx context.Context, specialty string) ([]*Procedure, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+procCols+` FROM procedure WHERE specialty = $1 ORDER BY name`, specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Procedure
	for rows.Next() {
		p, err := scanProcedure(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}
