package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/gridiron-league/pairdraft/internal/domain/league"
	"github.com/gridiron-league/pairdraft/internal/domain/player"
)

const DemoLeagueID = "demo-league"

var seedCounts = map[player.Position]int{
	player.PositionQuarterback:  30,
	player.PositionRunningBack:  70,
	player.PositionWideReceiver: 70,
	player.PositionTightEnd:     30,
	player.PositionKicker:       20,
	player.PositionDefense:      20,
}

var seedTeams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE",
	"DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG",
	"NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

var seedFirstNames = []string{
	"Jalen", "Marcus", "Tyrese", "Devon", "Caleb", "Jordan", "Malik",
	"Trevor", "Austin", "Darius", "Elijah", "Rashad", "Connor", "Zach",
	"Isaiah", "Tanner", "Kenny", "Jaylen", "Brock", "Xavier",
}

var seedLastNames = []string{
	"Carter", "Mitchell", "Robinson", "Hayes", "Brooks", "Coleman",
	"Sanders", "Pierce", "Whitfield", "Douglas", "Freeman", "Hubbard",
	"Maddox", "Ellison", "Granger", "Holloway", "Sutton", "Vaughn",
	"Wheeler", "Aldridge", "Barton", "Cross", "Dalton", "Emerson",
}

// SeedPlayers builds a deterministic 240-player population with all six
// positions and interleaved source ranks. Roughly one in twenty-three
// players carries no rank at all, mirroring late-roster players the rank
// feeds never cover.
func SeedPlayers() []player.Player {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	var out []player.Player
	seq := 0
	for posIdx, pos := range player.PositionOrder {
		count := seedCounts[pos]
		for j := 0; j < count; j++ {
			seq++
			p := player.Player{
				ID:        fmt.Sprintf("p-%s-%02d", strings.ToLower(string(pos)), j+1),
				SleeperID: fmt.Sprintf("%d", 1000+seq),
				Team:      seedTeams[(seq*7)%len(seedTeams)],
				Position:  pos,
				Age:       22 + (seq*5)%14,
				Status:    "Active",
				CreatedAt: now,
				UpdatedAt: now,
			}

			if pos == player.PositionDefense {
				p.Name = p.Team + " D/ST"
			} else {
				first := seedFirstNames[(j*7+posIdx)%len(seedFirstNames)]
				last := seedLastNames[(j*5+posIdx*3)%len(seedLastNames)]
				p.Name = first + " " + last
			}

			if seq%23 != 0 {
				overall := j*len(player.PositionOrder) + posIdx + 1
				sleeper := overall
				espn := overall + 2
				yahoo := overall + 1
				p.SleeperRank = &sleeper
				p.ESPNRank = &espn
				p.YahooRank = &yahoo
			}

			out = append(out, p)
		}
	}

	return out
}

// SeedDemoLeague builds a full twelve-member league ready for pairing.
func SeedDemoLeague() (league.League, []league.Member) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	demo := league.League{
		ID:             DemoLeagueID,
		Name:           "Demo League",
		CommissionerID: "user-01",
		Status:         league.StatusSetup,
		Settings:       league.DefaultSettings(),
		CreatedAt:      now,
	}

	members := make([]league.Member, 0, league.MaxMembers)
	for i := 1; i <= league.MaxMembers; i++ {
		members = append(members, league.Member{
			ID:          fmt.Sprintf("member-%02d", i),
			LeagueID:    DemoLeagueID,
			UserID:      fmt.Sprintf("user-%02d", i),
			Email:       fmt.Sprintf("user%02d@example.com", i),
			DisplayName: fmt.Sprintf("Manager %02d", i),
			JoinedAt:    now.Add(time.Duration(i) * time.Minute),
		})
	}

	return demo, members
}
