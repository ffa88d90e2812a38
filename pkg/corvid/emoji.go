package corvid

// CustomEmoji is a guild-scoped custom emoji.
type CustomEmoji struct {
	// GuildID identifies the owning guild.
	GuildID ID
	// ID is the emoji identifier.
	ID ID
	// Name is the emoji short name without colons.
	Name string
	// RoleIDs restricts usage to the listed roles when non-empty.
	RoleIDs []ID
	// RequireColons reports whether the emoji must be typed with colons.
	RequireColons bool
	// Managed reports whether an integration owns the emoji.
	Managed bool
	// Animated reports whether the emoji is animated.
	Animated bool
}

// MessageToken returns the token that renders the emoji inside a message.
func (e CustomEmoji) MessageToken() string {
	if e.Animated {
		return "<a:" + e.Name + ":" + e.ID.String() + ">"
	}

	return "<:" + e.Name + ":" + e.ID.String() + ">"
}
