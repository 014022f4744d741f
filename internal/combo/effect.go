package combo

import "strings"

// effectUpMarker tags labels such as `"Critical" EffectUP (M)`.
const effectUpMarker = "EffectUP"

type tierMarker struct {
	token    string
	strength int
}

// tierMarkers is scanned in order; the first token found in a label wins.
var tierMarkers = [...]tierMarker{
	{"(Sm)", 1},
	{"(S)", 1},
	{"(M)", 2},
	{"(L)", 3},
	{"(XL)", 4},
}

func matchTier(label string) (tierMarker, bool) {
	for _, m := range tierMarkers {
		if strings.Contains(label, m.token) {
			return m, true
		}
	}
	return tierMarker{}, false
}

// ParseEffect splits a raw effect label into its effect type and strength tier.
// An empty label has no type ("") and strength 0. A label without a tier
// marker is its own type with strength 1.
func ParseEffect(raw string) (effectType string, strength int) {
	if raw == "" {
		return "", 0
	}

	if m, ok := matchTier(raw); ok {
		return strings.TrimSpace(strings.Replace(raw, m.token, "", 1)), m.strength
	}

	// `"Name" EffectUP (tier)` labels: drop the marker and the quotes.
	if strings.Contains(raw, effectUpMarker) {
		if m, ok := matchTier(raw); ok {
			head, _, _ := strings.Cut(raw, effectUpMarker)
			return strings.ReplaceAll(strings.TrimSpace(head), `"`, ""), m.strength
		}
	}

	return raw, 1
}
