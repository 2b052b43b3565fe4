package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/pkg"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Create stores the user. The unique index on username settles concurrent sign ups.
func (r *Repo) Create(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", user.ID.String()))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO users (id, username, password, created_at) VALUES ($1, $2, $3, $4);`,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *Repo) FindByUsername(ctx context.Context, username string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.findByUsername")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.name", username))

	return r.findOne(ctx, `SELECT id, username, password, created_at FROM users WHERE username = $1;`, username)
}

func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.findByID")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id.String()))

	return r.findOne(ctx, `SELECT id, username, password, created_at FROM users WHERE id = $1;`, id)
}

func (r *Repo) findOne(ctx context.Context, query string, arg any) (*User, error) {
	var user User
	if err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
