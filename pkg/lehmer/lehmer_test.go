package lehmer

import "testing"

func TestRandReferenceValues(t *testing.T) {
	// Known outputs of the reference generator. Any drift here means the
	// truncation or float ordering changed and trials are no longer
	// reproducible across ports.
	cases := []struct {
		seed int64
		want float64
	}{
		{1, 0.5327672374121692},
		{2, 0.06553447482433844},
		{7, 0.7293706618851845},
		{42, 0.37622397131110724},
		{12345, 0.011545853229028104},
		{1000000, 0.23741216922058359},
		{999999999, 0.8794019831714229},
		{2147483646, 0.46723276258783075},
	}
	for _, tc := range cases {
		if got := Rand(tc.seed); got != tc.want {
			t.Fatalf("Rand(%d) = %v, want %v", tc.seed, got, tc.want)
		}
	}
}

func TestRandTruncatesTowardZero(t *testing.T) {
	// Floor division would push negative intermediates one step further
	// down; truncation keeps the sequence symmetric around zero.
	if got, want := Rand(-1), -0.5327672374121692; got != want {
		t.Fatalf("Rand(-1) = %v, want %v", got, want)
	}
	if got, want := Rand(-42), -0.37622397131110724; got != want {
		t.Fatalf("Rand(-42) = %v, want %v", got, want)
	}
}

func TestRandPure(t *testing.T) {
	for _, seed := range []int64{1, 99, 123456789} {
		first := Rand(seed)
		for i := 0; i < 10; i++ {
			if got := Rand(seed); got != first {
				t.Fatalf("Rand(%d) not stable: %v then %v", seed, first, got)
			}
		}
	}
}

func TestRandRange(t *testing.T) {
	for seed := int64(1); seed <= 10000; seed++ {
		v := Rand(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("Rand(%d) = %v outside [0,1)", seed, v)
		}
	}
}
