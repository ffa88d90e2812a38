package corvid

// Role is a permission role inside one guild.
type Role struct {
	// GuildID identifies the owning guild.
	GuildID ID
	// ID is the role identifier.
	ID ID
	// Name is the role display name.
	Name string
	// Color is the role color as an RGB integer, zero for none.
	Color int
	// Hoist reports whether members are listed separately in the sidebar.
	Hoist bool
	// Position is the ordering position in the role list.
	Position int
	// Permissions is the permission bit set granted by the role.
	Permissions uint64
	// Managed reports whether an integration owns the role.
	Managed bool
	// Mentionable reports whether anyone can mention the role.
	Mentionable bool
}

// Mention returns a mention token for this role.
func (r Role) Mention() string {
	return "<@&" + r.ID.String() + ">"
}
