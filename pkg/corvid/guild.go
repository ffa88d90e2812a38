package corvid

// Guild is a top-level server the client is a member of.
//
// A guild entity stores only the guild's own fields; its channels, roles,
// members, emoji, and voice states live in their own scoped stores keyed
// by the guild id.
type Guild struct {
	// ID is the guild identifier.
	ID ID
	// Name is the guild display name.
	Name string
	// Icon is the icon image hash, empty when unset.
	Icon string
	// OwnerID identifies the owning user.
	OwnerID ID
	// AFKChannelID is the voice channel idle members are moved to, zero for none.
	AFKChannelID ID
	// AFKTimeoutSeconds is the idle period before a member is moved.
	AFKTimeoutSeconds int
	// VerificationLevel is the guild's member verification requirement.
	VerificationLevel int
	// MemberCount is the total member count reported by the gateway.
	MemberCount int
	// Large reports whether the gateway withheld the offline member list.
	Large bool
	// Unavailable reports a guild known to exist but currently unreachable.
	Unavailable bool
	// Features lists gateway-reported guild feature tags.
	Features []string
}
