package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
)

type leagueTableModel struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	CommissionerID string    `db:"commissioner_id"`
	Status         string    `db:"status"`
	Settings       []byte    `db:"settings"`
	CreatedAt      time.Time `db:"created_at"`
}

func (m leagueTableModel) toDomain() (league.League, error) {
	var settings league.Settings
	if len(m.Settings) > 0 {
		if err := sonic.Unmarshal(m.Settings, &settings); err != nil {
			return league.League{}, fmt.Errorf("decode league settings: %w", err)
		}
	}

	return league.League{
		ID:             m.ID,
		Name:           m.Name,
		CommissionerID: m.CommissionerID,
		Status:         league.Status(m.Status),
		Settings:       settings,
		CreatedAt:      m.CreatedAt,
	}, nil
}

type memberTableModel struct {
	ID          string         `db:"id"`
	LeagueID    string         `db:"league_id"`
	UserID      string         `db:"user_id"`
	Email       string         `db:"email"`
	DisplayName string         `db:"display_name"`
	PairID      sql.NullString `db:"pair_id"`
	JoinedAt    time.Time      `db:"joined_at"`
}

func (m memberTableModel) toDomain() league.Member {
	out := league.Member{
		ID:          m.ID,
		LeagueID:    m.LeagueID,
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		JoinedAt:    m.JoinedAt,
	}
	if m.PairID.Valid {
		pairID := m.PairID.String
		out.PairID = &pairID
	}
	return out
}

type pairTableModel struct {
	ID         string    `db:"id"`
	LeagueID   string    `db:"league_id"`
	PoolNumber int       `db:"pool_number"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m pairTableModel) toDomain() league.Pair {
	return league.Pair{
		ID:         m.ID,
		LeagueID:   m.LeagueID,
		PoolNumber: m.PoolNumber,
		CreatedAt:  m.CreatedAt,
	}
}
