package components

// ObjectKind selects the behavior dispatched for an entity each tick.
// The set is closed.
type ObjectKind uint8

const (
	KindDefault ObjectKind = iota // passive, no forces
	KindChaser                    // pursues the player
	KindPlayer                    // driven by pointer input
)

// String returns the display name for an ObjectKind.
func (k ObjectKind) String() string {
	names := ObjectKindNames()
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ObjectKindNames returns the display names for all kinds.
// The order matches the ObjectKind constants.
func ObjectKindNames() []string {
	return []string{"Default", "Chaser", "Player"}
}
