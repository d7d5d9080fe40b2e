package models

// Group represents a set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// OwnerID is the user who created the group.
	OwnerID string

	// Members is the group's roster at the time it was loaded.
	Members []Member

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Member is a user's identity within a group.
type Member struct {
	// ID is the stable member identifier (the user ID). Never changes.
	ID string

	// DisplayName is the human-readable label (the username).
	// Unique within a group in practice, but nothing enforces it.
	DisplayName string

	// Contact is an auxiliary display field, the member's email.
	Contact string
}

// HasMember reports whether userID is on the group's roster.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}
