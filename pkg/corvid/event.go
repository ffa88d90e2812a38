package corvid

import (
	"fmt"
	"time"
)

// EventKind identifies a decoded gateway event type. Values are the wire
// event names emitted by the remote service.
type EventKind string

const (
	// EventChannelCreate announces a new channel.
	EventChannelCreate EventKind = "CHANNEL_CREATE"
	// EventChannelUpdate replaces an existing channel.
	EventChannelUpdate EventKind = "CHANNEL_UPDATE"
	// EventChannelDelete removes a channel.
	EventChannelDelete EventKind = "CHANNEL_DELETE"
	// EventGuildCreate announces a guild becoming available.
	EventGuildCreate EventKind = "GUILD_CREATE"
	// EventGuildUpdate replaces an existing guild.
	EventGuildUpdate EventKind = "GUILD_UPDATE"
	// EventGuildDelete removes a guild and everything scoped to it.
	EventGuildDelete EventKind = "GUILD_DELETE"
	// EventGuildRoleCreate announces a new role.
	EventGuildRoleCreate EventKind = "GUILD_ROLE_CREATE"
	// EventGuildRoleUpdate replaces an existing role.
	EventGuildRoleUpdate EventKind = "GUILD_ROLE_UPDATE"
	// EventGuildRoleDelete removes a role.
	EventGuildRoleDelete EventKind = "GUILD_ROLE_DELETE"
	// EventGuildMemberAdd announces a user joining a guild.
	EventGuildMemberAdd EventKind = "GUILD_MEMBER_ADD"
	// EventGuildMemberUpdate patches an existing member record.
	EventGuildMemberUpdate EventKind = "GUILD_MEMBER_UPDATE"
	// EventGuildMemberRemove announces a user leaving a guild.
	EventGuildMemberRemove EventKind = "GUILD_MEMBER_REMOVE"
	// EventGuildMembersChunk delivers one page of a bulk member resync.
	EventGuildMembersChunk EventKind = "GUILD_MEMBERS_CHUNK"
	// EventGuildEmojisUpdate delivers the updated emoji set of a guild.
	EventGuildEmojisUpdate EventKind = "GUILD_EMOJIS_UPDATE"
	// EventUserUpdate patches the client's own user account.
	EventUserUpdate EventKind = "USER_UPDATE"
	// EventPresenceUpdate patches a user's presence and identity fields.
	EventPresenceUpdate EventKind = "PRESENCE_UPDATE"
	// EventVoiceStateUpdate replaces a member's voice connection state.
	EventVoiceStateUpdate EventKind = "VOICE_STATE_UPDATE"
)

// UserRecord is the wire shape of a user object.
//
// Pointer fields distinguish "absent" from zero values: presence updates
// carry partial users where any identity field may be omitted.
type UserRecord struct {
	ID            ID      `json:"id"`
	Username      *string `json:"username,omitempty"`
	Discriminator *string `json:"discriminator,omitempty"`
	Avatar        *string `json:"avatar,omitempty"`
	Bot           *bool   `json:"bot,omitempty"`
}

// OverwriteRecord is the wire shape of a channel permission overwrite.
type OverwriteRecord struct {
	ID    ID     `json:"id"`
	Type  string `json:"type"`
	Allow uint64 `json:"allow"`
	Deny  uint64 `json:"deny"`
}

// ChannelRecord is the wire shape of a channel object.
type ChannelRecord struct {
	ID               ID                `json:"id"`
	Type             int               `json:"type"`
	GuildID          ID                `json:"guild_id,omitempty"`
	Name             string            `json:"name,omitempty"`
	Position         int               `json:"position,omitempty"`
	ParentID         ID                `json:"parent_id,omitempty"`
	Topic            string            `json:"topic,omitempty"`
	NSFW             bool              `json:"nsfw,omitempty"`
	RateLimitPerUser int               `json:"rate_limit_per_user,omitempty"`
	Bitrate          int               `json:"bitrate,omitempty"`
	UserLimit        int               `json:"user_limit,omitempty"`
	Overwrites       []OverwriteRecord `json:"permission_overwrites,omitempty"`
}

// GuildRecord is the wire shape of a guild object. Delete events carry only
// the id and the unavailable marker.
type GuildRecord struct {
	ID                ID       `json:"id"`
	Name              string   `json:"name,omitempty"`
	Icon              string   `json:"icon,omitempty"`
	OwnerID           ID       `json:"owner_id,omitempty"`
	AFKChannelID      ID       `json:"afk_channel_id,omitempty"`
	AFKTimeout        int      `json:"afk_timeout,omitempty"`
	VerificationLevel int      `json:"verification_level,omitempty"`
	MemberCount       int      `json:"member_count,omitempty"`
	Large             bool     `json:"large,omitempty"`
	Unavailable       bool     `json:"unavailable,omitempty"`
	Features          []string `json:"features,omitempty"`
}

// RoleRecord is the wire shape of a role object.
type RoleRecord struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Color       int    `json:"color"`
	Hoist       bool   `json:"hoist"`
	Position    int    `json:"position"`
	Permissions uint64 `json:"permissions"`
	Managed     bool   `json:"managed"`
	Mentionable bool   `json:"mentionable"`
}

// RoleEventRecord wraps a role create/update payload with its guild scope.
type RoleEventRecord struct {
	GuildID ID         `json:"guild_id"`
	Role    RoleRecord `json:"role"`
}

// RoleDeleteRecord is the wire shape of a role delete payload.
type RoleDeleteRecord struct {
	GuildID ID `json:"guild_id"`
	RoleID  ID `json:"role_id"`
}

// MemberRecord is the wire shape of a member object.
//
// Full member payloads (member add, chunk pages) carry Deaf, Mute, and
// JoinedAt; member update patches omit them, so the fields are pointers to
// preserve the distinction the merge rules depend on.
type MemberRecord struct {
	GuildID  ID         `json:"guild_id,omitempty"`
	User     UserRecord `json:"user"`
	Nick     string     `json:"nick,omitempty"`
	RoleIDs  []ID       `json:"roles"`
	Deaf     *bool      `json:"deaf,omitempty"`
	Mute     *bool      `json:"mute,omitempty"`
	JoinedAt *time.Time `json:"joined_at,omitempty"`
}

// MemberRemoveRecord is the wire shape of a member remove payload.
type MemberRemoveRecord struct {
	GuildID ID         `json:"guild_id"`
	User    UserRecord `json:"user"`
}

// MemberChunkRecord is one page of a bulk member resync.
type MemberChunkRecord struct {
	GuildID ID             `json:"guild_id"`
	Members []MemberRecord `json:"members"`
}

// EmojiRecord is the wire shape of a custom emoji object.
type EmojiRecord struct {
	ID            ID     `json:"id"`
	Name          string `json:"name"`
	RoleIDs       []ID   `json:"roles,omitempty"`
	RequireColons bool   `json:"require_colons,omitempty"`
	Managed       bool   `json:"managed,omitempty"`
	Animated      bool   `json:"animated,omitempty"`
}

// EmojiUpdateRecord is the wire shape of a guild emoji bulk update.
type EmojiUpdateRecord struct {
	GuildID ID            `json:"guild_id"`
	Emojis  []EmojiRecord `json:"emojis"`
}

// ActivityRecord is the wire shape of one presence activity.
type ActivityRecord struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	URL  string `json:"url,omitempty"`
}

// PresenceRecord is the wire shape of a presence update payload. The nested
// user is partial: only the id is guaranteed.
type PresenceRecord struct {
	User       UserRecord       `json:"user"`
	GuildID    ID               `json:"guild_id,omitempty"`
	Status     string           `json:"status"`
	Activities []ActivityRecord `json:"activities,omitempty"`
}

// VoiceStateRecord is the wire shape of a voice state update payload.
type VoiceStateRecord struct {
	GuildID   ID     `json:"guild_id,omitempty"`
	ChannelID ID     `json:"channel_id,omitempty"`
	UserID    ID     `json:"user_id"`
	SessionID string `json:"session_id"`
	Deaf      bool   `json:"deaf"`
	Mute      bool   `json:"mute"`
	SelfDeaf  bool   `json:"self_deaf"`
	SelfMute  bool   `json:"self_mute"`
	Suppress  bool   `json:"suppress"`
}

// Event is the decoded gateway event envelope the cache consumes.
//
// Kind selects exactly one record branch; Validate enforces the pairing so
// downstream switches can rely on the selected branch being present.
type Event struct {
	// Kind selects which record branch is expected.
	Kind EventKind
	// Sequence is the gateway sequence number of the originating frame,
	// zero when the event did not come from a sequenced frame.
	Sequence int64
	// Channel carries channel create/update/delete records.
	Channel *ChannelRecord
	// Guild carries guild create/update/delete records.
	Guild *GuildRecord
	// Role carries role create/update records.
	Role *RoleEventRecord
	// RoleDelete carries role delete records.
	RoleDelete *RoleDeleteRecord
	// Member carries member add and member update records.
	Member *MemberRecord
	// MemberRemove carries member remove records.
	MemberRemove *MemberRemoveRecord
	// MemberChunk carries bulk member resync pages.
	MemberChunk *MemberChunkRecord
	// Emojis carries guild emoji bulk updates.
	Emojis *EmojiUpdateRecord
	// User carries self-user update records.
	User *UserRecord
	// Presence carries presence update records.
	Presence *PresenceRecord
	// VoiceState carries voice state update records.
	VoiceState *VoiceStateRecord
}

// Validate checks envelope and record-branch coherence.
func (e *Event) Validate() error {
	if e == nil {
		return fmt.Errorf("%w: nil event", ErrInvalidEvent)
	}
	if e.Kind == "" {
		return fmt.Errorf("%w: missing kind", ErrInvalidEvent)
	}

	return validateRecordByKind(e)
}

// validateRecordByKind enforces record-branch requirements for each kind.
func validateRecordByKind(e *Event) error {
	switch e.Kind {
	case EventChannelCreate, EventChannelUpdate, EventChannelDelete:
		if e.Channel == nil {
			return fmt.Errorf("%w: %s requires channel record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildCreate, EventGuildUpdate, EventGuildDelete:
		if e.Guild == nil {
			return fmt.Errorf("%w: %s requires guild record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildRoleCreate, EventGuildRoleUpdate:
		if e.Role == nil {
			return fmt.Errorf("%w: %s requires role record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildRoleDelete:
		if e.RoleDelete == nil {
			return fmt.Errorf("%w: %s requires role delete record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildMemberAdd, EventGuildMemberUpdate:
		if e.Member == nil {
			return fmt.Errorf("%w: %s requires member record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildMemberRemove:
		if e.MemberRemove == nil {
			return fmt.Errorf("%w: %s requires member remove record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildMembersChunk:
		if e.MemberChunk == nil {
			return fmt.Errorf("%w: %s requires member chunk record", ErrInvalidEvent, e.Kind)
		}
	case EventGuildEmojisUpdate:
		if e.Emojis == nil {
			return fmt.Errorf("%w: %s requires emoji update record", ErrInvalidEvent, e.Kind)
		}
	case EventUserUpdate:
		if e.User == nil {
			return fmt.Errorf("%w: %s requires user record", ErrInvalidEvent, e.Kind)
		}
	case EventPresenceUpdate:
		if e.Presence == nil {
			return fmt.Errorf("%w: %s requires presence record", ErrInvalidEvent, e.Kind)
		}
	case EventVoiceStateUpdate:
		if e.VoiceState == nil {
			return fmt.Errorf("%w: %s requires voice state record", ErrInvalidEvent, e.Kind)
		}
	default:
		return fmt.Errorf("%w: unsupported kind %q", ErrInvalidEvent, e.Kind)
	}

	return nil
}
