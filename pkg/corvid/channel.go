package corvid

// ChannelType discriminates channel variants using the wire values.
type ChannelType int

const (
	// ChannelTypeText is a guild text channel.
	ChannelTypeText ChannelType = 0
	// ChannelTypeDM is a one-to-one direct message channel.
	ChannelTypeDM ChannelType = 1
	// ChannelTypeVoice is a guild voice channel.
	ChannelTypeVoice ChannelType = 2
	// ChannelTypeGroupDM is a multi-user direct message channel.
	ChannelTypeGroupDM ChannelType = 3
	// ChannelTypeCategory is a guild channel grouping container.
	ChannelTypeCategory ChannelType = 4
	// ChannelTypeNews is a guild announcement channel.
	ChannelTypeNews ChannelType = 5
)

// PermissionOverwrite is a per-channel permission override for a role or member.
type PermissionOverwrite struct {
	// ID identifies the role or user the overwrite applies to.
	ID ID
	// Type is "role" or "member".
	Type string
	// Allow is the explicitly granted permission bit set.
	Allow uint64
	// Deny is the explicitly denied permission bit set.
	Deny uint64
}

// TextChannelFields carries the fields valid only for text and news channels.
type TextChannelFields struct {
	// Topic is the channel topic, empty when unset.
	Topic string
	// NSFW reports whether the channel is age-restricted.
	NSFW bool
	// RateLimitPerUser is the per-user slowmode interval in seconds.
	RateLimitPerUser int
}

// VoiceChannelFields carries the fields valid only for voice channels.
type VoiceChannelFields struct {
	// Bitrate is the voice bitrate in bits per second.
	Bitrate int
	// UserLimit caps concurrent connected members, zero for unlimited.
	UserLimit int
}

// Channel is a tagged channel variant.
//
// Type selects which optional branch is populated: text and news channels
// carry Text, voice channels carry Voice, categories carry neither. DM and
// group-DM channels have a zero GuildID and are not guild-scoped.
type Channel struct {
	// ID is the channel identifier.
	ID ID
	// GuildID identifies the owning guild, zero for DM variants.
	GuildID ID
	// Type discriminates the variant.
	Type ChannelType
	// Name is the channel display name, empty for DM channels.
	Name string
	// Position is the ordering position in the channel list.
	Position int
	// ParentID identifies the owning category channel, zero for none.
	ParentID ID
	// Overwrites lists per-channel permission overrides.
	Overwrites []PermissionOverwrite
	// Text is set for text and news channels.
	Text *TextChannelFields
	// Voice is set for voice channels.
	Voice *VoiceChannelFields
}

// IsGuild reports whether the channel variant is guild-scoped.
func (c Channel) IsGuild() bool {
	switch c.Type {
	case ChannelTypeText, ChannelTypeVoice, ChannelTypeCategory, ChannelTypeNews:
		return true
	case ChannelTypeDM, ChannelTypeGroupDM:
		return false
	default:
		return false
	}
}

// Mention returns a clickable channel reference token.
func (c Channel) Mention() string {
	return "<#" + c.ID.String() + ">"
}
