package league

import (
	"errors"
	"fmt"
	"testing"
)

func testMembers(n int) []Member {
	out := make([]Member, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Member{
			ID:          fmt.Sprintf("member-%02d", i),
			LeagueID:    "league-1",
			UserID:      fmt.Sprintf("user-%02d", i),
			DisplayName: fmt.Sprintf("Manager %d", i),
		})
	}
	return out
}

func sequentialIDs(prefix string) func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return fmt.Sprintf("%s-%d", prefix, n), nil
	}
}

func identityShuffle(int, func(i, j int)) {}

// reverseShuffle is a deterministic non-identity permutation.
func reverseShuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func TestBuildPairs_GroupsConsecutiveTwosIntoPools(t *testing.T) {
	members := testMembers(MaxMembers)

	pairing, err := BuildPairs("league-1", members, identityShuffle, sequentialIDs("pair"))
	if err != nil {
		t.Fatalf("build pairs failed: %v", err)
	}

	if len(pairing.Pairs) != NumPairs {
		t.Fatalf("expected %d pairs, got %d", NumPairs, len(pairing.Pairs))
	}
	for i, pair := range pairing.Pairs {
		if pair.PoolNumber != i {
			t.Fatalf("pair %d bound to pool %d", i, pair.PoolNumber)
		}
		if pair.LeagueID != "league-1" {
			t.Fatalf("pair %d has league %s", i, pair.LeagueID)
		}
	}

	// Identity shuffle keeps join order: members 0,1 share pool 0 and so on.
	for i := 0; i < NumPairs; i++ {
		a := pairing.MemberPair[members[i*2].ID]
		b := pairing.MemberPair[members[i*2+1].ID]
		if a != b || a != pairing.Pairs[i].ID {
			t.Fatalf("pool %d: members bound to %s and %s, expected %s", i, a, b, pairing.Pairs[i].ID)
		}
	}
}

func TestBuildPairs_ShuffleDrivesGrouping(t *testing.T) {
	members := testMembers(MaxMembers)

	pairing, err := BuildPairs("league-1", members, reverseShuffle, sequentialIDs("pair"))
	if err != nil {
		t.Fatalf("build pairs failed: %v", err)
	}

	// Reversed order pairs the last two joiners into pool 0.
	first := pairing.Pairs[0].ID
	if pairing.MemberPair["member-11"] != first || pairing.MemberPair["member-10"] != first {
		t.Fatalf("expected members 11 and 10 in pool 0, got %v", pairing.MemberPair)
	}
}

func TestBuildPairs_RejectsWrongMemberCount(t *testing.T) {
	for _, n := range []int{0, 11, 13} {
		_, err := BuildPairs("league-1", testMembers(n), identityShuffle, sequentialIDs("pair"))
		if !errors.Is(err, ErrWrongMemberCount) {
			t.Fatalf("count %d: expected ErrWrongMemberCount, got %v", n, err)
		}
	}
}

func TestBuildPairs_RejectsAlreadyPairedMember(t *testing.T) {
	members := testMembers(MaxMembers)
	existing := "pair-old"
	members[4].PairID = &existing

	_, err := BuildPairs("league-1", members, identityShuffle, sequentialIDs("pair"))
	if !errors.Is(err, ErrMemberPaired) {
		t.Fatalf("expected ErrMemberPaired, got %v", err)
	}
}

func TestBuildPairs_DoesNotMutateInput(t *testing.T) {
	members := testMembers(MaxMembers)

	if _, err := BuildPairs("league-1", members, reverseShuffle, sequentialIDs("pair")); err != nil {
		t.Fatalf("build pairs failed: %v", err)
	}

	for i, m := range members {
		if m.ID != fmt.Sprintf("member-%02d", i) {
			t.Fatalf("input slice reordered at %d: %s", i, m.ID)
		}
	}
}
