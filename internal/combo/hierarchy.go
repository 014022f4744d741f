package combo

// FormRow lists the evolution forms of one cat, lowest first. Empty names
// are skipped.
type FormRow struct {
	First   string
	Evolved string
	True    string
	Ultra   string
}

func (r FormRow) forms() []string {
	out := make([]string, 0, 4)
	for _, f := range [...]string{r.First, r.Evolved, r.True, r.Ultra} {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Hierarchy maps a unit name to the forms that count as that unit: the unit
// itself and every higher evolution of the same cat.
//
// Search does not consult it; combos match on exact unit names.
type Hierarchy struct {
	forms map[string][]string
}

// BuildHierarchy indexes every form of every row. When a name appears in
// more than one row, the accepted forms are merged in first-seen order.
func BuildHierarchy(rows []FormRow) *Hierarchy {
	h := &Hierarchy{forms: make(map[string][]string)}
	for _, r := range rows {
		forms := r.forms()
		for i, f := range forms {
			for _, higher := range forms[i:] {
				h.add(f, higher)
			}
		}
	}
	return h
}

func (h *Hierarchy) add(form, accepted string) {
	for _, have := range h.forms[form] {
		if have == accepted {
			return
		}
	}
	h.forms[form] = append(h.forms[form], accepted)
}

// Forms returns the forms accepted for unit, in evolution order, or nil when
// the unit is unknown.
func (h *Hierarchy) Forms(unit string) []string {
	if h == nil {
		return nil
	}
	f := h.forms[unit]
	if f == nil {
		return nil
	}
	return append([]string(nil), f...)
}

// Len returns how many distinct form names are indexed.
func (h *Hierarchy) Len() int {
	if h == nil {
		return 0
	}
	return len(h.forms)
}
