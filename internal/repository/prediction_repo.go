package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"depression-api/internal/domain"
)

// PredictionRepository persiste el registro de auditoria de cada prediccion servida.
type PredictionRepository interface {
	Create(ctx context.Context, record domain.PredictionRecord) error
}

// pgExecutor es el subconjunto de pgxpool.Pool que usa el repositorio.
type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgPredictionRepository implementa PredictionRepository usando pgxpool.
type PgPredictionRepository struct {
	pool pgExecutor
}

func NewPgPredictionRepository(pool *pgxpool.Pool) *PgPredictionRepository {
	return &PgPredictionRepository{pool: pool}
}

// EnsureSchema crea la tabla si no existe.
func (r *PgPredictionRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS predictions (
			id UUID PRIMARY KEY,
			input JSONB NOT NULL,
			class INTEGER NOT NULL,
			label TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *PgPredictionRepository) Create(ctx context.Context, record domain.PredictionRecord) error {
	const query = `
		INSERT INTO predictions (id, input, class, label, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	input, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("marshal prediction input: %w", err)
	}

	_, err = r.pool.Exec(ctx, query,
		record.ID,
		input,
		record.Class,
		string(record.Label),
		record.CreatedAt,
	)
	return err
}

// NoopPredictionRepository descarta los registros. Se usa sin DATABASE_URL.
type NoopPredictionRepository struct{}

func (NoopPredictionRepository) Create(context.Context, domain.PredictionRecord) error {
	return nil
}
