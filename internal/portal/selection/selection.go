// Package selection tracks the set of invoices a portal contact has selected
// across filter, sort and page changes.
package selection

// State is the selection set plus the derived select-all flag. The flag only
// ever means "everything on the current page"; any change to the page's
// contents invalidates it.
type State struct {
	IDs         []string `json:"ids"`
	AllSelected bool     `json:"all_selected"`
}

// ToggleSelectAll selects the whole current page or clears the selection.
func (s *State) ToggleSelectAll(pageIDs []string, selected bool) {
	s.AllSelected = selected
	if selected {
		s.IDs = append([]string(nil), pageIDs...)
		return
	}
	s.IDs = nil
}

// Set replaces the selection with an explicit ID set and clears the
// select-all flag.
func (s *State) Set(ids []string) {
	s.AllSelected = false
	s.IDs = dedupe(ids)
}

// Reconcile intersects the selection with the IDs present on the freshly
// computed page and clears the select-all flag. It must run strictly after
// the new page is computed; reconciling against a stale page would leave
// phantom selections behind.
func (s *State) Reconcile(pageIDs []string) {
	s.AllSelected = false
	if len(s.IDs) == 0 {
		s.IDs = nil
		return
	}

	visible := make(map[string]bool, len(pageIDs))
	for _, id := range pageIDs {
		visible[id] = true
	}

	kept := s.IDs[:0]
	for _, id := range s.IDs {
		if visible[id] {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		s.IDs = nil
		return
	}
	s.IDs = kept
}

// Contains reports whether id is selected.
func (s State) Contains(id string) bool {
	for _, selected := range s.IDs {
		if selected == id {
			return true
		}
	}
	return false
}

// Count returns the selection size.
func (s State) Count() int {
	return len(s.IDs)
}

func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
