package player

import "testing"

func intPtr(v int) *int { return &v }

func TestCompositeValue_NoSignalsReturnsSentinel(t *testing.T) {
	for pos := range AllPositions {
		if got := CompositeValue(pos, nil, nil, nil); got != UnrankedValue {
			t.Fatalf("pos %s: expected %v, got %v", pos, UnrankedValue, got)
		}
	}
}

func TestCompositeValue_SingleSignalScaledByPosition(t *testing.T) {
	cases := []struct {
		pos      Position
		rank     int
		expected float64
	}{
		{PositionQuarterback, 10, 12.0},
		{PositionRunningBack, 10, 10.0},
		{PositionWideReceiver, 7, 7.0},
		{PositionTightEnd, 10, 9.0},
		{PositionKicker, 10, 5.0},
		{PositionDefense, 10, 6.0},
		{Position("FB"), 10, 8.0},
	}

	for _, tc := range cases {
		if got := CompositeValue(tc.pos, intPtr(tc.rank), nil, nil); got != tc.expected {
			t.Fatalf("pos %s rank %d: expected %v, got %v", tc.pos, tc.rank, tc.expected, got)
		}
	}
}

func TestCompositeValue_AveragesPresentSignals(t *testing.T) {
	// Two signals present, one missing: mean of 10 and 20 is 15.
	if got := CompositeValue(PositionRunningBack, intPtr(10), nil, intPtr(20)); got != 15.0 {
		t.Fatalf("expected 15.0, got %v", got)
	}
	if got := CompositeValue(PositionRunningBack, intPtr(3), intPtr(6), intPtr(9)); got != 6.0 {
		t.Fatalf("expected 6.0, got %v", got)
	}
}

func TestCompositeValue_MonotonicWithinPosition(t *testing.T) {
	prev := -1.0
	for rank := 1; rank <= 300; rank++ {
		got := CompositeValue(PositionWideReceiver, intPtr(rank), intPtr(rank+2), intPtr(rank+1))
		if got < prev {
			t.Fatalf("rank %d: value %v dropped below previous %v", rank, got, prev)
		}
		prev = got
	}
}

func TestCompositeValue_PureAndRepeatable(t *testing.T) {
	first := CompositeValue(PositionTightEnd, intPtr(12), intPtr(18), nil)
	for i := 0; i < 10; i++ {
		if got := CompositeValue(PositionTightEnd, intPtr(12), intPtr(18), nil); got != first {
			t.Fatalf("value changed between calls: %v vs %v", got, first)
		}
	}
}
