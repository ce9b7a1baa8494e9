package components

// UtilityEntry represents a single dispatched utility for rendering.
type UtilityEntry struct {
	Order   string
	Name    string
	Status  string
	Details string
}

// UtilityList renders a list of dispatched utilities in order.
type UtilityList struct {
	entries []UtilityEntry
}

// NewUtilityList constructs a utility list component.
func NewUtilityList(entries []UtilityEntry) UtilityList {
	clone := make([]UtilityEntry, len(entries))
	copy(clone, entries)
	return UtilityList{entries: clone}
}

// Entries returns the ordered utility entries.
func (l UtilityList) Entries() []UtilityEntry {
	clone := make([]UtilityEntry, len(l.entries))
	copy(clone, l.entries)
	return clone
}
