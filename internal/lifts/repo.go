package lifts

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"
)

var (
	ErrLiftNotFound  = errors.New("lift not found")
	ErrOwnerNotFound = errors.New("lift owner not found")
)

const liftColumns = `id, user_id, type, reps, weight, weight_type, one_rep_max, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, lift Lift) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", lift.ID.String()))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO lifts (`+liftColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		lift.ID, lift.UserID, lift.Type, lift.Reps, lift.Weight, lift.WeightType,
		lift.OneRepMax, lift.CreatedAt, lift.UpdatedAt,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return ErrOwnerNotFound
		}
		return err
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", id.String()))

	row := r.db.QueryRow(
		ctx,
		`SELECT `+liftColumns+` FROM lifts WHERE id = $1;`,
		id,
	)
	lift, err := scanLift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLiftNotFound
		}
		return nil, err
	}
	return lift, nil
}

// ListByOwner returns all lifts of the owner, newest first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID uuid.UUID) (_ []Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("owner.id", ownerID.String()))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+liftColumns+` FROM lifts WHERE user_id = $1 ORDER BY created_at DESC, id;`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}

	return collectLifts(rows)
}

// ListTop returns the best lifts of a type for a unit, by one rep max descending.
// Equal maxes are ordered by who got there first.
func (r *Repo) ListTop(ctx context.Context, liftType LiftType, weightType WeightType, limit int) (_ []Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.listTop")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("lift.type", string(liftType)),
		attribute.String("lift.weight_type", string(weightType)),
		attribute.Int("limit", limit),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT `+liftColumns+` FROM lifts
			WHERE type = $1 AND weight_type = $2
			ORDER BY one_rep_max DESC, created_at ASC
			LIMIT $3;`,
		liftType, weightType, limit,
	)
	if err != nil {
		return nil, err
	}

	return collectLifts(rows)
}

// Update replaces the mutable fields of the lift. Owner and created_at never change.
func (r *Repo) Update(ctx context.Context, lift Lift) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", lift.ID.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE lifts
			SET type = $1, reps = $2, weight = $3, weight_type = $4, one_rep_max = $5, updated_at = $6
			WHERE id = $7;`,
		lift.Type, lift.Reps, lift.Weight, lift.WeightType, lift.OneRepMax, lift.UpdatedAt, lift.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrLiftNotFound
	}
	return nil
}

// Delete removes the lift and returns the deleted record.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (_ *Lift, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.lifts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("lift.id", id.String()))

	row := r.db.QueryRow(
		ctx,
		`DELETE FROM lifts WHERE id = $1 RETURNING `+liftColumns+`;`,
		id,
	)
	lift, err := scanLift(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLiftNotFound
		}
		return nil, err
	}
	return lift, nil
}

func scanLift(row pgx.Row) (*Lift, error) {
	var l Lift
	if err := row.Scan(
		&l.ID, &l.UserID, &l.Type, &l.Reps, &l.Weight, &l.WeightType,
		&l.OneRepMax, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLifts(rows pgx.Rows) ([]Lift, error) {
	defer rows.Close()

	var lifts []Lift
	for rows.Next() {
		l, err := scanLift(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		lifts = append(lifts, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lifts, nil
}
