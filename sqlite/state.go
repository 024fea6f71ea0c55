package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	txStdLib "github.com/Thiht/transactor/stdlib"
	"github.com/charmbracelet/log"

	"github.com/benjamonnguyen/timetracker"
)

const (
	SelectAllStates = "SELECT workspace, key, value, created_at, updated_at FROM workspace_state"
	UpsertState     = "INSERT INTO workspace_state (workspace, key, value, created_at, updated_at) VALUES %s ON CONFLICT (workspace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at"
)

type stateEntity struct {
	Workspace string
	Key       string
	Value     string
	CreatedAt int64
	UpdatedAt int64
}

// stateRepo stores key-value state scoped to a single workspace.
type stateRepo struct {
	dbGetter  txStdLib.DBGetter
	workspace string
	l         *log.Logger
}

func NewStateRepo(dbGetter txStdLib.DBGetter, workspace string, logger *log.Logger) *stateRepo {
	return &stateRepo{
		dbGetter:  dbGetter,
		workspace: workspace,
		l:         logger,
	}
}

func (r *stateRepo) GetState(ctx context.Context, key timetracker.StateKey) (timetracker.ExistingStateRecord, error) {
	if key == "" {
		return timetracker.ExistingStateRecord{}, fmt.Errorf("provide key")
	}

	db := r.dbGetter(ctx)
	row := db.QueryRowContext(
		ctx,
		fmt.Sprintf("%s WHERE workspace = ? AND key = ?", SelectAllStates), r.workspace, string(key),
	)

	return extractState(row)
}

func (r *stateRepo) PutState(ctx context.Context, key timetracker.StateKey, value string) (timetracker.ExistingStateRecord, error) {
	if key == "" {
		return timetracker.ExistingStateRecord{}, fmt.Errorf("provide key")
	}

	now := time.Now()
	e := mapToStateEntity(timetracker.ExistingStateRecord{
		StateRecord: timetracker.StateRecord{
			Workspace: r.workspace,
			Key:       key,
			Value:     value,
		},
		CreatedAt: now,
		UpdatedAt: now,
	})

	args := []any{
		e.Workspace,
		e.Key,
		e.Value,
		e.CreatedAt,
		e.UpdatedAt,
	}
	query := fmt.Sprintf(UpsertState, generateParameters(len(args)))
	r.l.Debug("putting workspace state", "query", query, "args", args)
	if _, err := r.dbGetter(ctx).ExecContext(ctx, query, args...); err != nil {
		return timetracker.ExistingStateRecord{}, err
	}

	return r.GetState(ctx, key)
}

func (r *stateRepo) GetAllStates(ctx context.Context) ([]timetracker.ExistingStateRecord, error) {
	db := r.dbGetter(ctx)
	query := fmt.Sprintf("%s WHERE workspace = ? ORDER BY key", SelectAllStates)
	r.l.Debug("getting all workspace state", "query", query, "workspace", r.workspace)
	rows, err := db.QueryContext(ctx, query, r.workspace)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint

	var states []timetracker.ExistingStateRecord
	for rows.Next() {
		state, err := extractState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return states, nil
}

func extractState(s Scannable) (timetracker.ExistingStateRecord, error) {
	var e stateEntity
	if err := s.Scan(&e.Workspace, &e.Key, &e.Value, &e.CreatedAt, &e.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return timetracker.ExistingStateRecord{}, ErrNotFound
		}
		return timetracker.ExistingStateRecord{}, err
	}

	return mapToExistingStateRecord(e), nil
}

func mapToStateEntity(state timetracker.ExistingStateRecord) stateEntity {
	return stateEntity{
		Workspace: state.Workspace,
		Key:       string(state.Key),
		Value:     state.Value,
		CreatedAt: state.CreatedAt.Unix(),
		UpdatedAt: state.UpdatedAt.Unix(),
	}
}

func mapToExistingStateRecord(e stateEntity) timetracker.ExistingStateRecord {
	return timetracker.ExistingStateRecord{
		StateRecord: timetracker.StateRecord{
			Workspace: e.Workspace,
			Key:       timetracker.StateKey(e.Key),
			Value:     e.Value,
		},
		CreatedAt: time.Unix(e.CreatedAt, 0),
		UpdatedAt: time.Unix(e.UpdatedAt, 0),
	}
}
