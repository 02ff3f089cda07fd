package teams

// Team represents one participant in a game.
// Kept in its own package to keep domain models modular and reusable.
type Team struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Valid reports whether the team can take part in a game: it must have a name.
func (t Team) Valid() bool {
	return t.Name != ""
}

// Equal reports whether two teams identify the same participant.
// Identity is by name.
func (t Team) Equal(other Team) bool {
	return t.Name == other.Name
}
