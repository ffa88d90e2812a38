package corvid

// VoiceState is one member's voice connection state inside one guild.
//
// Voice states are keyed by (GuildID, UserID). A state whose ChannelID is
// zero reports a disconnect.
type VoiceState struct {
	// GuildID identifies the owning guild.
	GuildID ID
	// ChannelID identifies the connected voice channel, zero when disconnected.
	ChannelID ID
	// UserID identifies the member this state belongs to.
	UserID ID
	// SessionID is the opaque voice session identifier.
	SessionID string
	// Deaf reports a server deafen.
	Deaf bool
	// Mute reports a server mute.
	Mute bool
	// SelfDeaf reports a self deafen.
	SelfDeaf bool
	// SelfMute reports a self mute.
	SelfMute bool
	// Suppress reports whether the member is suppressed by permissions.
	Suppress bool
}
