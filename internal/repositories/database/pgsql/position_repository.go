package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
)

type PgxPositionRepository struct {
	BaseRepository
}

func newPgxPositionRepository(pool *pgxpool.Pool) portsrepo.PositionRepository {
	return &PgxPositionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPositionRepository implements portsrepo.PositionRepository
var _ portsrepo.PositionRepository = (*PgxPositionRepository)(nil)

const positionColumns = `position_id, name, code, description, workspace_id, is_default, created_at, updated_at`

func scanPosition(row pgx.Row) (*domain.Position, error) {
	var p domain.Position
	err := row.Scan(
		&p.PositionID,
		&p.Name,
		&p.Code,
		&p.Description,
		&p.WorkspaceID,
		&p.IsDefault,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PgxPositionRepository) CreatePosition(ctx context.Context, position domain.Position) (*domain.Position, error) {
	query := `
		INSERT INTO positions (name, code, description, workspace_id, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING position_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		position.Name,
		position.Code,
		position.Description,
		position.WorkspaceID,
		position.IsDefault,
		position.CreatedAt,
	).Scan(&position.PositionID)
	if err != nil {
		if translated := translateUniqueViolation(err, "position code "+position.Code+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert position: %w", err)
	}
	return &position, nil
}

func (r *PgxPositionRepository) FindPositionByID(ctx context.Context, positionID int64) (*domain.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE position_id = $1;`
	position, err := scanPosition(r.Pool.QueryRow(ctx, query, positionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find position by id %d: %w", positionID, err)
	}

	if err := r.loadActionIDs(ctx, position); err != nil {
		return nil, err
	}
	return position, nil
}

func (r *PgxPositionRepository) loadActionIDs(ctx context.Context, position *domain.Position) error {
	rows, err := r.Pool.Query(ctx,
		`SELECT action_id FROM position_actions WHERE position_id = $1 ORDER BY action_id ASC`,
		position.PositionID,
	)
	if err != nil {
		return fmt.Errorf("failed to query position actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var actionID int64
		if err := rows.Scan(&actionID); err != nil {
			return fmt.Errorf("failed to scan position action row: %w", err)
		}
		position.ActionIDs = append(position.ActionIDs, actionID)
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating position action rows: %w", rows.Err())
	}
	return nil
}

func positionFilterClause(filter portsrepo.ListPositionsFilter) (string, []any) {
	clause := ` WHERE 1=1`
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		p := fmt.Sprintf("$%d", len(args))
		clause += fmt.Sprintf(" AND (name ILIKE %[1]s OR code ILIKE %[1]s)", p)
	}
	if filter.WorkspaceID != nil {
		args = append(args, *filter.WorkspaceID)
		clause += fmt.Sprintf(" AND workspace_id = $%d", len(args))
	}
	if filter.IsDefault != nil {
		args = append(args, *filter.IsDefault)
		clause += fmt.Sprintf(" AND is_default = $%d", len(args))
	}
	return clause, args
}

func (r *PgxPositionRepository) CountPositions(ctx context.Context, filter portsrepo.ListPositionsFilter) (int, error) {
	clause, args := positionFilterClause(filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM positions`+clause, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}

func (r *PgxPositionRepository) FindPositions(ctx context.Context, filter portsrepo.ListPositionsFilter, limit, offset int) ([]domain.Position, error) {
	clause, args := positionFilterClause(filter)
	order := " ORDER BY created_at DESC"
	if filter.OrderAsc {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, limit, offset)
	query := `SELECT ` + positionColumns + ` FROM positions` + clause + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []domain.Position{}
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position row: %w", err)
		}
		positions = append(positions, *position)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating position rows: %w", rows.Err())
	}
	return positions, nil
}

func (r *PgxPositionRepository) UpdatePosition(ctx context.Context, position domain.Position) error {
	query := `
		UPDATE positions
		SET name = $1, code = $2, description = $3, workspace_id = $4,
			is_default = $5, updated_at = $6
		WHERE position_id = $7;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		position.Name,
		position.Code,
		position.Description,
		position.WorkspaceID,
		position.IsDefault,
		position.UpdatedAt,
		position.PositionID,
	)
	if err != nil {
		if translated := translateUniqueViolation(err, "position code "+position.Code+" already in use"); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update position: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPositionRepository) DeletePosition(ctx context.Context, positionID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM positions WHERE position_id = $1`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position %d: %w", positionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ReplaceActions swaps the position's action set atomically.
func (r *PgxPositionRepository) ReplaceActions(ctx context.Context, positionID int64, actionIDs []int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM position_actions WHERE position_id = $1`, positionID); err != nil {
		return fmt.Errorf("failed to clear position actions: %w", err)
	}
	for _, actionID := range actionIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO position_actions (position_id, action_id) VALUES ($1, $2)`,
			positionID, actionID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach action %d: %w", actionID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPositionRepository) CreateAction(ctx context.Context, action domain.Action) (*domain.Action, error) {
	query := `
		INSERT INTO actions (name, code, description)
		VALUES ($1, $2, $3)
		RETURNING action_id;
	`
	err := r.Pool.QueryRow(ctx, query, action.Name, action.Code, action.Description).Scan(&action.ActionID)
	if err != nil {
		if translated := translateUniqueViolation(err, "action code "+action.Code+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert action: %w", err)
	}
	return &action, nil
}

func (r *PgxPositionRepository) FindActions(ctx context.Context) ([]domain.Action, error) {
	rows, err := r.Pool.Query(ctx, `SELECT action_id, name, code, description FROM actions ORDER BY action_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	actions := []domain.Action{}
	for rows.Next() {
		var a domain.Action
		if err := rows.Scan(&a.ActionID, &a.Name, &a.Code, &a.Description); err != nil {
			return nil, fmt.Errorf("failed to scan action row: %w", err)
		}
		actions = append(actions, a)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating action rows: %w", rows.Err())
	}
	return actions, nil
}
