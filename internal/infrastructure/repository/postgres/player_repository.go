package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `id, sleeper_id, name, team, position, age, status,
	sleeper_rank, espn_rank, yahoo_rank, composite_value, pool_assignment,
	created_at, updated_at`

func (r *PlayerRepository) List(ctx context.Context, filter player.ListFilter) ([]player.Player, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.Position != "" {
		args = append(args, string(filter.Position))
		conditions = append(conditions, fmt.Sprintf("position = $%d", len(args)))
	}
	if filter.Pool != nil {
		args = append(args, *filter.Pool)
		conditions = append(conditions, fmt.Sprintf("pool_assignment = $%d", len(args)))
	}

	query := "SELECT " + playerColumns + " FROM players"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY composite_value, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) Get(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := "SELECT " + playerColumns + " FROM players WHERE id = $1"

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByPool(ctx context.Context, poolNumber int) ([]player.Player, error) {
	query := "SELECT " + playerColumns + ` FROM players
		WHERE pool_assignment = $1
		ORDER BY composite_value, id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, poolNumber); err != nil {
		return nil, fmt.Errorf("select pool players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) CountAssigned(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM players WHERE pool_assignment IS NOT NULL"); err != nil {
		return 0, fmt.Errorf("count assigned players: %w", err)
	}

	return count, nil
}

func (r *PlayerRepository) ApplyAssignments(ctx context.Context, assignments []player.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin assignments tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx,
		"UPDATE players SET pool_assignment = $1, composite_value = $2, updated_at = NOW() WHERE id = $3")
	if err != nil {
		return fmt.Errorf("prepare assignment update: %w", err)
	}
	defer stmt.Close()

	for _, a := range assignments {
		if _, err := stmt.ExecContext(ctx, a.Pool, a.CompositeValue, a.PlayerID); err != nil {
			return fmt.Errorf("apply assignment player=%s: %w", a.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assignments: %w", err)
	}

	return nil
}

func (r *PlayerRepository) UpsertBySleeperID(ctx context.Context, players []player.Player) (int, error) {
	if len(players) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback()

	// xmax = 0 only holds for freshly inserted rows, which is how the
	// insert count survives the ON CONFLICT path.
	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO players (id, sleeper_id, name, team, position, age, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (sleeper_id) DO UPDATE SET
			name = EXCLUDED.name,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			age = EXCLUDED.age,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
		RETURNING (xmax = 0) AS inserted`)
	if err != nil {
		return 0, fmt.Errorf("prepare player upsert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range players {
		var isInsert bool
		if err := stmt.GetContext(ctx, &isInsert,
			p.ID, p.SleeperID, p.Name, p.Team, string(p.Position), p.Age, p.Status,
			p.CreatedAt, p.UpdatedAt,
		); err != nil {
			return 0, fmt.Errorf("upsert player sleeper_id=%s: %w", p.SleeperID, err)
		}
		if isInsert {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit player upserts: %w", err)
	}

	return inserted, nil
}
