package components

import "testing"

func TestLayoutRowSumsToTotal(t *testing.T) {
	cases := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{80, 3},
		{7, 2},
	}
	for _, tc := range cases {
		widths := LayoutRow(tc.total, tc.n)
		if len(widths) != tc.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tc.total, tc.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
	}
}

func TestLayoutRowRemainderGoesFirst(t *testing.T) {
	widths := LayoutRow(10, 3)
	if widths[0] != 4 || widths[1] != 3 || widths[2] != 3 {
		t.Errorf("LayoutRow(10, 3) = %v, want [4 3 3]", widths)
	}
}

func TestLayoutRowZeroItems(t *testing.T) {
	if widths := LayoutRow(100, 0); widths != nil {
		t.Errorf("LayoutRow(100, 0) = %v, want nil", widths)
	}
}

func TestCardInnerWidthFloor(t *testing.T) {
	if w := CardInnerWidth(8); w != 10 {
		t.Errorf("CardInnerWidth(8) = %d, want floor of 10", w)
	}
	if w := CardInnerWidth(50); w != 46 {
		t.Errorf("CardInnerWidth(50) = %d, want 46", w)
	}
}

func TestTabIdxByKey(t *testing.T) {
	if idx := TabIdxByKey('t'); idx != 1 {
		t.Errorf("TabIdxByKey('t') = %d, want 1", idx)
	}
	if idx := TabIdxByKey('z'); idx != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", idx)
	}
}

func TestTruncLabel(t *testing.T) {
	if got := truncLabel("Groceries", 20); got != "Groceries" {
		t.Errorf("short label changed: %q", got)
	}
	if got := truncLabel("Entertainment", 6); got != "Enter…" {
		t.Errorf("truncLabel = %q, want %q", got, "Enter…")
	}
}
