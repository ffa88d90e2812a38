package state

import (
	"fmt"

	"corvid/pkg/corvid"
)

// Builder converts gateway records into fully-populated cache entities.
//
// Contract:
// - A returned entity is complete; the engine never stores a partial build.
// - A record that cannot produce an entity fails with an error wrapping
//   corvid.ErrMalformedRecord.
// - Implementations must be safe for concurrent use.
type Builder interface {
	// Guild builds a guild entity from its record.
	Guild(record *corvid.GuildRecord) (corvid.Guild, error)
	// Channel builds a channel variant from its record.
	Channel(record *corvid.ChannelRecord) (corvid.Channel, error)
	// Role builds a role entity scoped to guildID.
	Role(guildID corvid.ID, record *corvid.RoleRecord) (corvid.Role, error)
	// Member builds a member entity scoped to guildID.
	Member(guildID corvid.ID, record *corvid.MemberRecord) (corvid.Member, error)
	// User builds a global user entity from its record.
	User(record *corvid.UserRecord) (corvid.User, error)
	// Presence builds a presence entity from its record.
	Presence(record *corvid.PresenceRecord) (corvid.Presence, error)
	// VoiceState builds a voice state entity from its record.
	VoiceState(record *corvid.VoiceStateRecord) (corvid.VoiceState, error)
	// Emoji builds a custom emoji entity scoped to guildID.
	Emoji(guildID corvid.ID, record *corvid.EmojiRecord) (corvid.CustomEmoji, error)
}

// RecordBuilder is the stock Builder over the wire-shaped records decoded
// from gateway frames.
type RecordBuilder struct{}

// NewRecordBuilder creates the stock record builder.
func NewRecordBuilder() RecordBuilder {
	return RecordBuilder{}
}

// Guild builds a guild entity from its record.
func (RecordBuilder) Guild(record *corvid.GuildRecord) (corvid.Guild, error) {
	if record == nil || record.ID.IsZero() {
		return corvid.Guild{}, fmt.Errorf("build guild: %w: missing id", corvid.ErrMalformedRecord)
	}

	return corvid.Guild{
		ID:                record.ID,
		Name:              record.Name,
		Icon:              record.Icon,
		OwnerID:           record.OwnerID,
		AFKChannelID:      record.AFKChannelID,
		AFKTimeoutSeconds: record.AFKTimeout,
		VerificationLevel: record.VerificationLevel,
		MemberCount:       record.MemberCount,
		Large:             record.Large,
		Unavailable:       record.Unavailable,
		Features:          append([]string(nil), record.Features...),
	}, nil
}

// Channel builds a channel variant from its record. Unknown channel types
// are malformed: storing a variant the model cannot express would leak
// fields the rest of the cache cannot interpret.
func (RecordBuilder) Channel(record *corvid.ChannelRecord) (corvid.Channel, error) {
	if record == nil || record.ID.IsZero() {
		return corvid.Channel{}, fmt.Errorf("build channel: %w: missing id", corvid.ErrMalformedRecord)
	}

	channel := corvid.Channel{
		ID:       record.ID,
		GuildID:  record.GuildID,
		Type:     corvid.ChannelType(record.Type),
		Name:     record.Name,
		Position: record.Position,
		ParentID: record.ParentID,
	}

	for _, overwrite := range record.Overwrites {
		channel.Overwrites = append(channel.Overwrites, corvid.PermissionOverwrite{
			ID:    overwrite.ID,
			Type:  overwrite.Type,
			Allow: overwrite.Allow,
			Deny:  overwrite.Deny,
		})
	}

	switch channel.Type {
	case corvid.ChannelTypeText, corvid.ChannelTypeNews:
		channel.Text = &corvid.TextChannelFields{
			Topic:            record.Topic,
			NSFW:             record.NSFW,
			RateLimitPerUser: record.RateLimitPerUser,
		}
	case corvid.ChannelTypeVoice:
		channel.Voice = &corvid.VoiceChannelFields{
			Bitrate:   record.Bitrate,
			UserLimit: record.UserLimit,
		}
	case corvid.ChannelTypeCategory, corvid.ChannelTypeDM, corvid.ChannelTypeGroupDM:
		// No variant branch.
	default:
		return corvid.Channel{}, fmt.Errorf("build channel %s: %w: unknown type %d",
			record.ID, corvid.ErrMalformedRecord, record.Type)
	}

	return channel, nil
}

// Role builds a role entity scoped to guildID.
func (RecordBuilder) Role(guildID corvid.ID, record *corvid.RoleRecord) (corvid.Role, error) {
	if record == nil || record.ID.IsZero() {
		return corvid.Role{}, fmt.Errorf("build role: %w: missing id", corvid.ErrMalformedRecord)
	}
	if guildID.IsZero() {
		return corvid.Role{}, fmt.Errorf("build role %s: %w: missing guild id", record.ID, corvid.ErrMalformedRecord)
	}

	return corvid.Role{
		GuildID:     guildID,
		ID:          record.ID,
		Name:        record.Name,
		Color:       record.Color,
		Hoist:       record.Hoist,
		Position:    record.Position,
		Permissions: record.Permissions,
		Managed:     record.Managed,
		Mentionable: record.Mentionable,
	}, nil
}

// Member builds a member entity scoped to guildID. Optional record fields
// left nil build as their zero values; the engine's merge rules are
// responsible for filling them from an existing cached member first.
func (RecordBuilder) Member(guildID corvid.ID, record *corvid.MemberRecord) (corvid.Member, error) {
	if record == nil || record.User.ID.IsZero() {
		return corvid.Member{}, fmt.Errorf("build member: %w: missing user id", corvid.ErrMalformedRecord)
	}
	if guildID.IsZero() {
		guildID = record.GuildID
	}
	if guildID.IsZero() {
		return corvid.Member{}, fmt.Errorf("build member %s: %w: missing guild id", record.User.ID, corvid.ErrMalformedRecord)
	}

	member := corvid.Member{
		GuildID: guildID,
		UserID:  record.User.ID,
		Nick:    record.Nick,
		RoleIDs: append([]corvid.ID(nil), record.RoleIDs...),
	}
	if record.Deaf != nil {
		member.Deaf = *record.Deaf
	}
	if record.Mute != nil {
		member.Mute = *record.Mute
	}
	if record.JoinedAt != nil {
		member.JoinedAt = *record.JoinedAt
	}

	return member, nil
}

// User builds a global user entity from its record.
func (RecordBuilder) User(record *corvid.UserRecord) (corvid.User, error) {
	if record == nil || record.ID.IsZero() {
		return corvid.User{}, fmt.Errorf("build user: %w: missing id", corvid.ErrMalformedRecord)
	}

	user := corvid.User{ID: record.ID}
	if record.Username != nil {
		user.Username = *record.Username
	}
	if record.Discriminator != nil {
		user.Discriminator = *record.Discriminator
	}
	if record.Avatar != nil {
		user.Avatar = *record.Avatar
	}
	if record.Bot != nil {
		user.Bot = *record.Bot
	}

	return user, nil
}

// Presence builds a presence entity from its record.
func (RecordBuilder) Presence(record *corvid.PresenceRecord) (corvid.Presence, error) {
	if record == nil || record.User.ID.IsZero() {
		return corvid.Presence{}, fmt.Errorf("build presence: %w: missing user id", corvid.ErrMalformedRecord)
	}

	status := corvid.OnlineStatus(record.Status)
	if status == "" {
		status = corvid.StatusOffline
	}

	presence := corvid.Presence{
		UserID: record.User.ID,
		Status: status,
	}
	for _, activity := range record.Activities {
		presence.Activities = append(presence.Activities, corvid.Activity{
			Name: activity.Name,
			Type: corvid.ActivityType(activity.Type),
			URL:  activity.URL,
		})
	}

	return presence, nil
}

// VoiceState builds a voice state entity from its record. Guild scoping is
// not enforced here; the engine decides what to do with guildless states.
func (RecordBuilder) VoiceState(record *corvid.VoiceStateRecord) (corvid.VoiceState, error) {
	if record == nil || record.UserID.IsZero() {
		return corvid.VoiceState{}, fmt.Errorf("build voice state: %w: missing user id", corvid.ErrMalformedRecord)
	}

	return corvid.VoiceState{
		GuildID:   record.GuildID,
		ChannelID: record.ChannelID,
		UserID:    record.UserID,
		SessionID: record.SessionID,
		Deaf:      record.Deaf,
		Mute:      record.Mute,
		SelfDeaf:  record.SelfDeaf,
		SelfMute:  record.SelfMute,
		Suppress:  record.Suppress,
	}, nil
}

// Emoji builds a custom emoji entity scoped to guildID.
func (RecordBuilder) Emoji(guildID corvid.ID, record *corvid.EmojiRecord) (corvid.CustomEmoji, error) {
	if record == nil || record.ID.IsZero() {
		return corvid.CustomEmoji{}, fmt.Errorf("build emoji: %w: missing id", corvid.ErrMalformedRecord)
	}
	if guildID.IsZero() {
		return corvid.CustomEmoji{}, fmt.Errorf("build emoji %s: %w: missing guild id", record.ID, corvid.ErrMalformedRecord)
	}

	return corvid.CustomEmoji{
		GuildID:       guildID,
		ID:            record.ID,
		Name:          record.Name,
		RoleIDs:       append([]corvid.ID(nil), record.RoleIDs...),
		RequireColons: record.RequireColons,
		Managed:       record.Managed,
		Animated:      record.Animated,
	}, nil
}

// Ensure RecordBuilder implements Builder.
var _ Builder = RecordBuilder{}
