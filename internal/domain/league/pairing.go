package league

import (
	"errors"
	"fmt"
)

var (
	ErrWrongMemberCount = errors.New("league needs exactly twelve members")
	ErrMemberPaired     = errors.New("member already belongs to a pair")
)

// Pairing is the one-shot outcome of splitting a full league into pairs.
type Pairing struct {
	Pairs []Pair
	// MemberPair maps member id to the pair id it was bound to.
	MemberPair map[string]string
}

// BuildPairs shuffles the twelve members with the supplied shuffle function
// and groups consecutive twos into pairs bound to pools 0 through 5. The
// shuffle supplies all randomness; grouping is purely positional, so a
// deterministic shuffle yields a deterministic pairing.
func BuildPairs(
	leagueID string,
	members []Member,
	shuffle func(n int, swap func(i, j int)),
	newID func() (string, error),
) (Pairing, error) {
	if len(members) != MaxMembers {
		return Pairing{}, fmt.Errorf("%w: currently has %d", ErrWrongMemberCount, len(members))
	}
	for _, m := range members {
		if m.PairID != nil {
			return Pairing{}, fmt.Errorf("%w: member=%s", ErrMemberPaired, m.ID)
		}
	}

	shuffled := make([]Member, len(members))
	copy(shuffled, members)
	shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	pairing := Pairing{
		Pairs:      make([]Pair, 0, NumPairs),
		MemberPair: make(map[string]string, MaxMembers),
	}
	for pool := 0; pool < NumPairs; pool++ {
		pairID, err := newID()
		if err != nil {
			return Pairing{}, fmt.Errorf("generate pair id: %w", err)
		}
		pairing.Pairs = append(pairing.Pairs, Pair{
			ID:         pairID,
			LeagueID:   leagueID,
			PoolNumber: pool,
		})
		pairing.MemberPair[shuffled[pool*2].ID] = pairID
		pairing.MemberPair[shuffled[pool*2+1].ID] = pairID
	}

	return pairing, nil
}
