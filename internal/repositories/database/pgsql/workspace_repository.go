package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/core/domain"
	portsrepo "github.com/pharmago/pharmago_backend/internal/core/ports/repositories"
)

type PgxWorkspaceRepository struct {
	BaseRepository
}

func newPgxWorkspaceRepository(pool *pgxpool.Pool) portsrepo.WorkspaceRepository {
	return &PgxWorkspaceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWorkspaceRepository implements portsrepo.WorkspaceRepository
var _ portsrepo.WorkspaceRepository = (*PgxWorkspaceRepository)(nil)

const workspaceColumns = `
	workspace_id, name, code, description, parent_id, owner_id,
	created_at, created_by, updated_at, updated_by, is_delete, deleted_at`

func scanWorkspace(row pgx.Row) (*domain.Workspace, error) {
	var w domain.Workspace
	err := row.Scan(
		&w.WorkspaceID,
		&w.Name,
		&w.Code,
		&w.Description,
		&w.ParentID,
		&w.OwnerID,
		&w.CreatedAt,
		&w.CreatedBy,
		&w.UpdatedAt,
		&w.UpdatedBy,
		&w.IsDelete,
		&w.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *PgxWorkspaceRepository) CreateWorkspace(ctx context.Context, workspace domain.Workspace) (*domain.Workspace, error) {
	query := `
		INSERT INTO workspaces (
			name, code, description, parent_id, owner_id,
			created_at, created_by, is_delete
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false)
		RETURNING workspace_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		workspace.Name,
		workspace.Code,
		workspace.Description,
		workspace.ParentID,
		workspace.OwnerID,
		workspace.CreatedAt,
		workspace.CreatedBy,
	).Scan(&workspace.WorkspaceID)
	if err != nil {
		if translated := translateUniqueViolation(err, "workspace code "+workspace.Code+" already in use"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to insert workspace: %w", err)
	}
	return &workspace, nil
}

func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID int64) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE workspace_id = $1;`
	workspace, err := scanWorkspace(r.Pool.QueryRow(ctx, query, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find workspace by id %d: %w", workspaceID, err)
	}
	return workspace, nil
}

func workspaceFilterClause(filter portsrepo.ListWorkspacesFilter) (string, []any) {
	clause := ` WHERE 1=1`
	args := []any{}
	if filter.Keyword != "" {
		args = append(args, "%"+filter.Keyword+"%")
		p := fmt.Sprintf("$%d", len(args))
		clause += fmt.Sprintf(" AND (name ILIKE %[1]s OR code ILIKE %[1]s)", p)
	}
	if filter.ParentID != nil {
		args = append(args, *filter.ParentID)
		clause += fmt.Sprintf(" AND parent_id = $%d", len(args))
	}
	if filter.OwnerID != nil {
		args = append(args, *filter.OwnerID)
		clause += fmt.Sprintf(" AND owner_id = $%d", len(args))
	}
	if filter.IsDelete != nil {
		args = append(args, *filter.IsDelete)
		clause += fmt.Sprintf(" AND is_delete = $%d", len(args))
	}
	return clause, args
}

func (r *PgxWorkspaceRepository) CountWorkspaces(ctx context.Context, filter portsrepo.ListWorkspacesFilter) (int, error) {
	clause, args := workspaceFilterClause(filter)
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM workspaces`+clause, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count workspaces: %w", err)
	}
	return count, nil
}

func (r *PgxWorkspaceRepository) FindWorkspaces(ctx context.Context, filter portsrepo.ListWorkspacesFilter, limit, offset int) ([]domain.Workspace, error) {
	clause, args := workspaceFilterClause(filter)
	order := " ORDER BY created_at DESC"
	if filter.OrderAsc {
		order = " ORDER BY created_at ASC"
	}
	args = append(args, limit, offset)
	query := `SELECT ` + workspaceColumns + ` FROM workspaces` + clause + order +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}
	defer rows.Close()

	workspaces := []domain.Workspace{}
	for rows.Next() {
		workspace, err := scanWorkspace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workspace row: %w", err)
		}
		workspaces = append(workspaces, *workspace)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating workspace rows: %w", rows.Err())
	}
	return workspaces, nil
}

func (r *PgxWorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error {
	query := `
		UPDATE workspaces
		SET name = $1, code = $2, description = $3, parent_id = $4, owner_id = $5,
			updated_at = $6, updated_by = $7, is_delete = $8, deleted_at = $9
		WHERE workspace_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		workspace.Name,
		workspace.Code,
		workspace.Description,
		workspace.ParentID,
		workspace.OwnerID,
		workspace.UpdatedAt,
		workspace.UpdatedBy,
		workspace.IsDelete,
		workspace.DeletedAt,
		workspace.WorkspaceID,
	)
	if err != nil {
		if translated := translateUniqueViolation(err, "workspace code "+workspace.Code+" already in use"); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update workspace: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) HardDeleteWorkspace(ctx context.Context, workspaceID int64) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM workspaces WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return fmt.Errorf("failed to delete workspace %d: %w", workspaceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) AddUserMember(ctx context.Context, workspaceID, userID int64, joinedAt time.Time) (*domain.WorkspaceUser, error) {
	query := `
		INSERT INTO workspace_users (workspace_id, user_id, joined_at)
		VALUES ($1, $2, $3)
		RETURNING workspace_user_id;
	`
	membership := domain.WorkspaceUser{WorkspaceID: workspaceID, UserID: userID, JoinedAt: joinedAt}
	err := r.Pool.QueryRow(ctx, query, workspaceID, userID, joinedAt).Scan(&membership.WorkspaceUserID)
	if err != nil {
		if translated := translateUniqueViolation(err, "user is already a member of this workspace"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to add user member: %w", err)
	}
	return &membership, nil
}

func (r *PgxWorkspaceRepository) AddCustomerMember(ctx context.Context, workspaceID, customerID int64, joinedAt time.Time) (*domain.WorkspaceCustomer, error) {
	query := `
		INSERT INTO workspace_customers (workspace_id, customer_id, joined_at)
		VALUES ($1, $2, $3)
		RETURNING workspace_customer_id;
	`
	membership := domain.WorkspaceCustomer{WorkspaceID: workspaceID, CustomerID: customerID, JoinedAt: joinedAt}
	err := r.Pool.QueryRow(ctx, query, workspaceID, customerID, joinedAt).Scan(&membership.WorkspaceCustomerID)
	if err != nil {
		if translated := translateUniqueViolation(err, "customer is already a member of this workspace"); translated != err {
			return nil, translated
		}
		return nil, fmt.Errorf("failed to add customer member: %w", err)
	}
	return &membership, nil
}

func (r *PgxWorkspaceRepository) MarkUserLeft(ctx context.Context, workspaceID, userID int64, leftAt time.Time) error {
	query := `
		UPDATE workspace_users
		SET left_at = $1
		WHERE workspace_id = $2 AND user_id = $3 AND left_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, leftAt, workspaceID, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user membership left: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) MarkCustomerLeft(ctx context.Context, workspaceID, customerID int64, leftAt time.Time) error {
	query := `
		UPDATE workspace_customers
		SET left_at = $1
		WHERE workspace_id = $2 AND customer_id = $3 AND left_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, leftAt, workspaceID, customerID)
	if err != nil {
		return fmt.Errorf("failed to mark customer membership left: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindUserMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceUser, error) {
	query := `
		SELECT workspace_user_id, workspace_id, user_id, joined_at, left_at
		FROM workspace_users
		WHERE workspace_id = $1
		ORDER BY joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user members: %w", err)
	}
	defer rows.Close()

	members := []domain.WorkspaceUser{}
	for rows.Next() {
		var m domain.WorkspaceUser
		if err := rows.Scan(&m.WorkspaceUserID, &m.WorkspaceID, &m.UserID, &m.JoinedAt, &m.LeftAt); err != nil {
			return nil, fmt.Errorf("failed to scan user member row: %w", err)
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating user member rows: %w", rows.Err())
	}

	if err := r.attachPositions(ctx, members); err != nil {
		return nil, err
	}
	return members, nil
}

// attachPositions loads position assignments for the memberships in one query.
func (r *PgxWorkspaceRepository) attachPositions(ctx context.Context, members []domain.WorkspaceUser) error {
	if len(members) == 0 {
		return nil
	}
	ids := make([]int64, len(members))
	index := make(map[int64]*domain.WorkspaceUser, len(members))
	for i := range members {
		ids[i] = members[i].WorkspaceUserID
		index[members[i].WorkspaceUserID] = &members[i]
	}

	query := `
		SELECT workspace_user_id, position_id
		FROM workspace_user_positions
		WHERE workspace_user_id = ANY($1)
		ORDER BY position_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to query membership positions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var membershipID, positionID int64
		if err := rows.Scan(&membershipID, &positionID); err != nil {
			return fmt.Errorf("failed to scan membership position row: %w", err)
		}
		if m, ok := index[membershipID]; ok {
			m.PositionIDs = append(m.PositionIDs, positionID)
		}
	}
	if rows.Err() != nil {
		return fmt.Errorf("error iterating membership position rows: %w", rows.Err())
	}
	return nil
}

func (r *PgxWorkspaceRepository) FindCustomerMembers(ctx context.Context, workspaceID int64) ([]domain.WorkspaceCustomer, error) {
	query := `
		SELECT workspace_customer_id, workspace_id, customer_id, joined_at, left_at
		FROM workspace_customers
		WHERE workspace_id = $1
		ORDER BY joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer members: %w", err)
	}
	defer rows.Close()

	members := []domain.WorkspaceCustomer{}
	for rows.Next() {
		var m domain.WorkspaceCustomer
		if err := rows.Scan(&m.WorkspaceCustomerID, &m.WorkspaceID, &m.CustomerID, &m.JoinedAt, &m.LeftAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer member row: %w", err)
		}
		members = append(members, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer member rows: %w", rows.Err())
	}
	return members, nil
}

// ReplacePositions swaps the membership's position assignments atomically.
func (r *PgxWorkspaceRepository) ReplacePositions(ctx context.Context, workspaceUserID int64, positionIDs []int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM workspace_users WHERE workspace_user_id = $1)`, workspaceUserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check membership %d: %w", workspaceUserID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM workspace_user_positions WHERE workspace_user_id = $1`, workspaceUserID); err != nil {
		return fmt.Errorf("failed to clear membership positions: %w", err)
	}
	for _, positionID := range positionIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO workspace_user_positions (workspace_user_id, position_id) VALUES ($1, $2)`,
			workspaceUserID, positionID,
		)
		if err != nil {
			return fmt.Errorf("failed to assign position %d: %w", positionID, err)
		}
	}

	return r.Commit(ctx, tx)
}
