package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) CreateLeague(ctx context.Context, l league.League) error {
	settings, err := sonic.Marshal(l.Settings)
	if err != nil {
		return fmt.Errorf("encode league settings: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO leagues (id, name, commissioner_id, status, settings, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Name, l.CommissionerID, string(l.Status), settings, l.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) GetLeague(ctx context.Context, leagueID string) (league.League, bool, error) {
	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row,
		"SELECT id, name, commissioner_id, status, settings, created_at FROM leagues WHERE id = $1",
		leagueID,
	); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return league.League{}, false, err
	}

	return out, true, nil
}

func (r *LeagueRepository) AddMember(ctx context.Context, m league.Member) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO league_members (id, league_id, user_id, email, display_name, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.LeagueID, m.UserID, m.Email, m.DisplayName, m.JoinedAt,
	); err != nil {
		return fmt.Errorf("insert member: %w", err)
	}

	return nil
}

const memberColumns = "id, league_id, user_id, email, display_name, pair_id, joined_at"

func (r *LeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]league.Member, error) {
	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+memberColumns+" FROM league_members WHERE league_id = $1 ORDER BY joined_at, id",
		leagueID,
	); err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) ListPairMembers(ctx context.Context, pairID string) ([]league.Member, error) {
	var rows []memberTableModel
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+memberColumns+" FROM league_members WHERE pair_id = $1 ORDER BY joined_at, id",
		pairID,
	); err != nil {
		return nil, fmt.Errorf("select pair members: %w", err)
	}

	out := make([]league.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) ListPairs(ctx context.Context, leagueID string) ([]league.Pair, error) {
	var rows []pairTableModel
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT id, league_id, pool_number, created_at FROM pairs WHERE league_id = $1 ORDER BY pool_number",
		leagueID,
	); err != nil {
		return nil, fmt.Errorf("select pairs: %w", err)
	}

	out := make([]league.Pair, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LeagueRepository) GetPair(ctx context.Context, pairID string) (league.Pair, bool, error) {
	var row pairTableModel
	if err := r.db.GetContext(ctx, &row,
		"SELECT id, league_id, pool_number, created_at FROM pairs WHERE id = $1",
		pairID,
	); err != nil {
		if isNotFound(err) {
			return league.Pair{}, false, nil
		}
		return league.Pair{}, false, fmt.Errorf("get pair: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *LeagueRepository) SavePairs(ctx context.Context, leagueID string, pairing league.Pairing, status league.Status) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin pairing tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range pairing.Pairs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pairs (id, league_id, pool_number, created_at)
			VALUES ($1, $2, $3, $4)`,
			p.ID, p.LeagueID, p.PoolNumber, p.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert pair pool=%d: %w", p.PoolNumber, err)
		}
	}

	for memberID, pairID := range pairing.MemberPair {
		result, err := tx.ExecContext(ctx,
			"UPDATE league_members SET pair_id = $1 WHERE id = $2 AND league_id = $3 AND pair_id IS NULL",
			pairID, memberID, leagueID,
		)
		if err != nil {
			return fmt.Errorf("bind member=%s to pair: %w", memberID, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("bind member=%s rows affected: %w", memberID, err)
		}
		if affected != 1 {
			return fmt.Errorf("member=%s not bound: missing or already paired", memberID)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE leagues SET status = $1 WHERE id = $2",
		string(status), leagueID,
	); err != nil {
		return fmt.Errorf("update league status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit pairing: %w", err)
	}

	return nil
}
