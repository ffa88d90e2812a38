package corvid

import "time"

// Member is one user's membership record inside one guild.
//
// Membership is keyed by (GuildID, UserID): the same user holds an
// independent member record in every guild they share with the client,
// separate from their single global User record.
type Member struct {
	// GuildID identifies the owning guild.
	GuildID ID
	// UserID identifies the user this membership belongs to.
	UserID ID
	// Nick is the per-guild nickname, empty when unset.
	Nick string
	// RoleIDs lists the ids of the member's roles in this guild.
	RoleIDs []ID
	// Deaf reports whether the member is server-deafened.
	Deaf bool
	// Mute reports whether the member is server-muted.
	Mute bool
	// JoinedAt is the most recent time the member joined the guild.
	// Zero when the gateway never supplied it.
	JoinedAt time.Time
}

// Mention returns a mention token for this member.
func (m Member) Mention() string {
	if m.Nick != "" {
		return "<@!" + m.UserID.String() + ">"
	}

	return "<@" + m.UserID.String() + ">"
}
