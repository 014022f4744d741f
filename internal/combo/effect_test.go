package combo

import "testing"

func TestParseEffect(t *testing.T) {
	cases := []struct {
		raw      string
		wantType string
		wantStr  int
	}{
		{"", "", 0},
		{"Unknown Thing", "Unknown Thing", 1},
		{"Attack (Sm)", "Attack", 1},
		{"Attack (S)", "Attack", 1},
		{"Attack (M)", "Attack", 2},
		{"Attack (L)", "Attack", 3},
		{"Attack (XL)", "Attack", 4},
		{"  Worker Start Lv. (L)  ", "Worker Start Lv.", 3},
		{"(M)", "", 2},
		{"Knockback (M) (M)", "Knockback  (M)", 2},
		{`"Critical" EffectUP (M)`, `"Critical" EffectUP`, 2},
		{"Strong vs Red EffectUP", "Strong vs Red EffectUP", 1},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			gotType, gotStr := ParseEffect(tc.raw)
			if gotType != tc.wantType || gotStr != tc.wantStr {
				t.Fatalf("ParseEffect(%q) = (%q, %d), want (%q, %d)", tc.raw, gotType, gotStr, tc.wantType, tc.wantStr)
			}
		})
	}
}

func TestParseEffectIsIdempotent(t *testing.T) {
	for _, raw := range []string{"Attack (M)", "", "Speed Up (XL)"} {
		t1, s1 := ParseEffect(raw)
		t2, s2 := ParseEffect(raw)
		if t1 != t2 || s1 != s2 {
			t.Fatalf("ParseEffect(%q) not stable: (%q,%d) vs (%q,%d)", raw, t1, s1, t2, s2)
		}
	}
}
