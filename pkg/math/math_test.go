package math

import "testing"

func TestDivRoundUp(t *testing.T) {
	for _, tc := range []struct{ a, b, wanted int }{
		{0, 128, 0},
		{1, 128, 1},
		{128, 128, 1},
		{129, 128, 2},
		{400, 128, 4},
	} {
		if found := DivRoundUp(tc.a, tc.b); found != tc.wanted {
			t.Fatalf(
				"DivRoundUp(%d, %d): wanted `%d`; found `%d`",
				tc.a,
				tc.b,
				tc.wanted,
				found,
			)
		}
	}
}

func TestMinMax(t *testing.T) {
	if found := Min[int64](-3, 2); found != -3 {
		t.Fatalf("Min(-3, 2): wanted `-3`; found `%d`", found)
	}
	if found := Max[uint8](3, 200); found != 200 {
		t.Fatalf("Max(3, 200): wanted `200`; found `%d`", found)
	}
}
