package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridiron-league/pairdraft/internal/domain/draft"
)

type DraftRepository struct {
	db *sqlx.DB
}

func NewDraftRepository(db *sqlx.DB) *DraftRepository {
	return &DraftRepository{db: db}
}

const draftColumns = "id, pair_id, status, current_picker_id, pick_timer_seconds, started_at, completed_at"

func (r *DraftRepository) Create(ctx context.Context, d draft.Draft) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO drafts (id, pair_id, status, current_picker_id, pick_timer_seconds, started_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.PairID, string(d.Status), d.CurrentPickerID, d.PickTimerSeconds, d.StartedAt,
	); err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) Get(ctx context.Context, draftID string) (draft.Draft, bool, error) {
	var row draftTableModel
	if err := r.db.GetContext(ctx, &row,
		"SELECT "+draftColumns+" FROM drafts WHERE id = $1", draftID,
	); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) GetByPair(ctx context.Context, pairID string) (draft.Draft, bool, error) {
	var row draftTableModel
	if err := r.db.GetContext(ctx, &row,
		"SELECT "+draftColumns+" FROM drafts WHERE pair_id = $1", pairID,
	); err != nil {
		if isNotFound(err) {
			return draft.Draft{}, false, nil
		}
		return draft.Draft{}, false, fmt.Errorf("get draft by pair: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *DraftRepository) ListPicks(ctx context.Context, draftID string) ([]draft.Pick, error) {
	return listPicks(ctx, r.db, draftID)
}

// SubmitPick serializes concurrent picks through a row lock on the draft:
// the SELECT ... FOR UPDATE blocks until any racing transaction commits,
// so decide always sees the state that transaction left behind.
func (r *DraftRepository) SubmitPick(ctx context.Context, draftID string, decide draft.DecideFunc) (draft.Pick, draft.Draft, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return draft.Pick{}, draft.Draft{}, fmt.Errorf("begin pick tx: %w", err)
	}
	defer tx.Rollback()

	var row draftTableModel
	if err := tx.GetContext(ctx, &row,
		"SELECT "+draftColumns+" FROM drafts WHERE id = $1 FOR UPDATE", draftID,
	); err != nil {
		if isNotFound(err) {
			return draft.Pick{}, draft.Draft{}, draft.ErrNotFound
		}
		return draft.Pick{}, draft.Draft{}, fmt.Errorf("lock draft: %w", err)
	}

	picks, err := listPicks(ctx, tx, draftID)
	if err != nil {
		return draft.Pick{}, draft.Draft{}, err
	}

	pick, updated, err := decide(row.toDomain(), picks)
	if err != nil {
		return draft.Pick{}, draft.Draft{}, err
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO draft_picks (draft_id, pick_number, member_id, player_id, picked_at)
		VALUES ($1, $2, $3, $4, $5)`,
		pick.DraftID, pick.PickNumber, pick.MemberID, pick.PlayerID, pick.PickedAt,
	); err != nil {
		return draft.Pick{}, draft.Draft{}, fmt.Errorf("insert pick: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE drafts SET status = $1, current_picker_id = $2, completed_at = $3 WHERE id = $4`,
		string(updated.Status), updated.CurrentPickerID, updated.CompletedAt, updated.ID,
	); err != nil {
		return draft.Pick{}, draft.Draft{}, fmt.Errorf("update draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return draft.Pick{}, draft.Draft{}, fmt.Errorf("commit pick: %w", err)
	}

	return pick, updated, nil
}

func listPicks(ctx context.Context, q sqlx.QueryerContext, draftID string) ([]draft.Pick, error) {
	var rows []pickTableModel
	if err := sqlx.SelectContext(ctx, q, &rows,
		"SELECT draft_id, pick_number, member_id, player_id, picked_at FROM draft_picks WHERE draft_id = $1 ORDER BY pick_number",
		draftID,
	); err != nil {
		return nil, fmt.Errorf("select picks: %w", err)
	}

	out := make([]draft.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
