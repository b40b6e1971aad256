package postgres

import (
	"database/sql"
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

type playerTableModel struct {
	ID             string          `db:"id"`
	SleeperID      string          `db:"sleeper_id"`
	Name           string          `db:"name"`
	Team           string          `db:"team"`
	Position       string          `db:"position"`
	Age            int             `db:"age"`
	Status         string          `db:"status"`
	SleeperRank    sql.NullInt64   `db:"sleeper_rank"`
	ESPNRank       sql.NullInt64   `db:"espn_rank"`
	YahooRank      sql.NullInt64   `db:"yahoo_rank"`
	CompositeValue float64         `db:"composite_value"`
	PoolAssignment sql.NullInt64   `db:"pool_assignment"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:             m.ID,
		SleeperID:      m.SleeperID,
		Name:           m.Name,
		Team:           m.Team,
		Position:       player.Position(m.Position),
		Age:            m.Age,
		Status:         m.Status,
		SleeperRank:    nullInt64ToIntPtr(m.SleeperRank),
		ESPNRank:       nullInt64ToIntPtr(m.ESPNRank),
		YahooRank:      nullInt64ToIntPtr(m.YahooRank),
		CompositeValue: m.CompositeValue,
		PoolAssignment: nullInt64ToIntPtr(m.PoolAssignment),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
