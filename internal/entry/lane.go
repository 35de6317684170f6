package entry

// Lane is a categorical column group ("section") that entries are assigned
// to. The uncategorized lane (empty id) always exists even when no lane rows
// are persisted.
type Lane struct {
	ID    string
	Name  string
	Order int
	Color string
}

// UncategorizedLaneColor is the fallback color for entries without a lane.
const UncategorizedLaneColor = "#9399b2"

// UncategorizedLane returns the synthetic lane for entries with no category.
func UncategorizedLane() Lane {
	return Lane{ID: "", Name: "(no section)", Order: -1, Color: UncategorizedLaneColor}
}

// IsUncategorized returns true for the synthetic lane.
func (l Lane) IsUncategorized() bool {
	return l.ID == ""
}
