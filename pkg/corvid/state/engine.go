package state

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"corvid/pkg/corvid"
)

// Entity kind labels used in logs and metric attributes.
const (
	kindGuild      = "guild"
	kindUser       = "user"
	kindMember     = "member"
	kindRole       = "role"
	kindChannel    = "channel"
	kindEmoji      = "emoji"
	kindPresence   = "presence"
	kindVoiceState = "voice_state"
)

// Drop reasons used in metric attributes.
const (
	dropReasonNonGuildChannel = "non_guild_channel"
	dropReasonUncachedTarget  = "uncached_merge_target"
	dropReasonNoGuildScope    = "no_guild_scope"
	dropReasonSelfUser        = "self_user"
	dropReasonPolicy          = "policy"
)

// Option mutates engine configuration at construction time.
type Option func(*Engine)

// WithBuilder replaces the stock record builder.
func WithBuilder(builder Builder) Option {
	return func(engine *Engine) {
		if builder != nil {
			engine.builder = builder
		}
	}
}

// WithFlags selects entity kinds the engine will not retain.
func WithFlags(flags Flags) Option {
	return func(engine *Engine) {
		engine.flags = flags
	}
}

// WithLogger injects a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(engine *Engine) {
		if logger != nil {
			engine.logger = logger
		}
	}
}

// WithMeterProvider wires cache mutation counters against the provider.
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(engine *Engine) {
		if provider != nil {
			engine.meterProvider = provider
		}
	}
}

// Engine is the single authority that applies decoded gateway events to the
// entity stores and exposes the query surface over them.
//
// Apply is designed for one producer applying events in arrival order;
// lookups and views may be called from any number of goroutines at any
// time. Only the engine mutates its stores.
type Engine struct {
	builder       Builder
	flags         Flags
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	metrics       *engineMetrics

	guilds      *Store[corvid.Guild]
	users       *Store[corvid.User]
	presences   *Store[corvid.Presence]
	members     *ScopedStore[corvid.Member]
	roles       *ScopedStore[corvid.Role]
	channels    *ScopedStore[corvid.Channel]
	emoji       *ScopedStore[corvid.CustomEmoji]
	voiceStates *ScopedStore[corvid.VoiceState]
}

// New creates an engine with empty stores.
func New(options ...Option) (*Engine, error) {
	engine := &Engine{
		builder:       NewRecordBuilder(),
		logger:        slog.Default(),
		meterProvider: noop.NewMeterProvider(),
		guilds:        NewStore[corvid.Guild](),
		users:         NewStore[corvid.User](),
		presences:     NewStore[corvid.Presence](),
		members:       NewScopedStore[corvid.Member](),
		roles:         NewScopedStore[corvid.Role](),
		channels:      NewScopedStore[corvid.Channel](),
		emoji:         NewScopedStore[corvid.CustomEmoji](),
		voiceStates:   NewScopedStore[corvid.VoiceState](),
	}
	for _, option := range options {
		option(engine)
	}

	metrics, err := newEngineMetrics(engine.meterProvider)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	engine.metrics = metrics

	return engine, nil
}

// Flags returns the retention policy the engine was constructed with.
func (e *Engine) Flags() Flags {
	return e.flags
}

// Apply merges one decoded event into the stores.
//
// A build failure aborts the event with an error and no store mutation.
// Events whose merge target is missing, or whose payload cannot be scoped,
// are logged and dropped without error: the remote service is the system
// of record and the next full-state event self-heals the entry.
func (e *Engine) Apply(ctx context.Context, event *corvid.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("apply: %w", err)
	}

	switch event.Kind {
	case corvid.EventChannelCreate, corvid.EventChannelUpdate:
		return e.applyChannelUpsert(ctx, event.Channel)
	case corvid.EventChannelDelete:
		return e.applyChannelDelete(ctx, event.Channel)
	case corvid.EventGuildCreate, corvid.EventGuildUpdate:
		return e.applyGuildUpsert(ctx, event.Guild)
	case corvid.EventGuildDelete:
		return e.applyGuildDelete(ctx, event.Guild)
	case corvid.EventGuildRoleCreate, corvid.EventGuildRoleUpdate:
		return e.applyRoleUpsert(ctx, event.Role)
	case corvid.EventGuildRoleDelete:
		return e.applyRoleDelete(ctx, event.RoleDelete)
	case corvid.EventGuildMemberAdd:
		return e.applyMemberAdd(ctx, event.Member)
	case corvid.EventGuildMemberUpdate:
		return e.applyMemberUpdate(ctx, event.Member)
	case corvid.EventGuildMemberRemove:
		return e.applyMemberRemove(ctx, event.MemberRemove)
	case corvid.EventGuildMembersChunk:
		return e.applyMemberChunk(ctx, event.MemberChunk)
	case corvid.EventGuildEmojisUpdate:
		return e.applyEmojiUpdate(ctx, event.Emojis)
	case corvid.EventUserUpdate:
		return e.applySelfUserUpdate(ctx, event.User)
	case corvid.EventPresenceUpdate:
		return e.applyPresenceUpdate(ctx, event.Presence)
	case corvid.EventVoiceStateUpdate:
		return e.applyVoiceStateUpdate(ctx, event.VoiceState)
	default:
		return fmt.Errorf("apply: %w: kind %q", corvid.ErrInvalidEvent, event.Kind)
	}
}

// applyChannelUpsert replaces a guild channel. Non-guild channels are not
// tracked by this cache and are dropped.
func (e *Engine) applyChannelUpsert(ctx context.Context, record *corvid.ChannelRecord) error {
	channel, err := e.builder.Channel(record)
	if err != nil {
		return fmt.Errorf("apply channel upsert: %w", err)
	}

	if !channel.IsGuild() || channel.GuildID.IsZero() {
		e.logger.Warn("not caching non-guild channel", "channel_id", channel.ID)
		e.metrics.drop(ctx, kindChannel, dropReasonNonGuildChannel)
		return nil
	}

	e.channels.Put(channel.GuildID, channel.ID, channel)
	e.metrics.write(ctx, kindChannel, 1)
	e.logger.Debug("cached channel", "channel_id", channel.ID, "guild_id", channel.GuildID)

	return nil
}

// applyChannelDelete builds the channel to discover its id and owning guild,
// then removes that key.
func (e *Engine) applyChannelDelete(ctx context.Context, record *corvid.ChannelRecord) error {
	channel, err := e.builder.Channel(record)
	if err != nil {
		return fmt.Errorf("apply channel delete: %w", err)
	}

	if !channel.IsGuild() || channel.GuildID.IsZero() {
		e.logger.Warn("ignoring delete for non-guild channel", "channel_id", channel.ID)
		e.metrics.drop(ctx, kindChannel, dropReasonNonGuildChannel)
		return nil
	}

	e.channels.Remove(channel.GuildID, channel.ID)
	e.metrics.remove(ctx, kindChannel, 1)
	e.logger.Debug("deleted channel", "channel_id", channel.ID, "guild_id", channel.GuildID)

	return nil
}

// applyGuildUpsert replaces the whole guild entity.
func (e *Engine) applyGuildUpsert(ctx context.Context, record *corvid.GuildRecord) error {
	guild, err := e.builder.Guild(record)
	if err != nil {
		return fmt.Errorf("apply guild upsert: %w", err)
	}

	e.guilds.Put(guild.ID, guild)
	e.metrics.write(ctx, kindGuild, 1)
	e.logger.Debug("cached guild", "guild_id", guild.ID)

	return nil
}

// applyGuildDelete removes the guild and cascades removal of every entity
// kind scoped to it. The cascade is a correctness invariant: without it the
// nested stores would keep orphaned containers for a guild that no longer
// exists.
func (e *Engine) applyGuildDelete(ctx context.Context, record *corvid.GuildRecord) error {
	if record == nil || record.ID.IsZero() {
		return fmt.Errorf("apply guild delete: %w: missing id", corvid.ErrMalformedRecord)
	}

	guildID := record.ID
	e.guilds.Remove(guildID)
	e.channels.RemoveScope(guildID)
	e.roles.RemoveScope(guildID)
	e.members.RemoveScope(guildID)
	e.emoji.RemoveScope(guildID)
	e.voiceStates.RemoveScope(guildID)

	e.metrics.remove(ctx, kindGuild, 1)
	e.logger.Debug("deleted guild and cascaded scoped entities", "guild_id", guildID)

	return nil
}

// applyRoleUpsert replaces a role under its guild.
func (e *Engine) applyRoleUpsert(ctx context.Context, record *corvid.RoleEventRecord) error {
	role, err := e.builder.Role(record.GuildID, &record.Role)
	if err != nil {
		return fmt.Errorf("apply role upsert: %w", err)
	}

	e.roles.Put(role.GuildID, role.ID, role)
	e.metrics.write(ctx, kindRole, 1)
	e.logger.Debug("cached role", "role_id", role.ID, "guild_id", role.GuildID)

	return nil
}

// applyRoleDelete removes one role key.
func (e *Engine) applyRoleDelete(ctx context.Context, record *corvid.RoleDeleteRecord) error {
	if record.GuildID.IsZero() || record.RoleID.IsZero() {
		return fmt.Errorf("apply role delete: %w: missing id", corvid.ErrMalformedRecord)
	}

	e.roles.Remove(record.GuildID, record.RoleID)
	e.metrics.remove(ctx, kindRole, 1)
	e.logger.Debug("deleted role", "role_id", record.RoleID, "guild_id", record.GuildID)

	return nil
}

// applyMemberAdd caches the member under its guild and the carried user
// globally. Both entities are built before either store is touched so a
// build failure leaves no partial write.
func (e *Engine) applyMemberAdd(ctx context.Context, record *corvid.MemberRecord) error {
	user, err := e.builder.User(&record.User)
	if err != nil {
		return fmt.Errorf("apply member add: %w", err)
	}
	member, err := e.builder.Member(record.GuildID, record)
	if err != nil {
		return fmt.Errorf("apply member add: %w", err)
	}

	e.users.Put(user.ID, user)
	e.members.Put(member.GuildID, member.UserID, member)
	e.metrics.write(ctx, kindUser, 1)
	e.metrics.write(ctx, kindMember, 1)
	e.logger.Debug("cached member", "user_id", member.UserID, "guild_id", member.GuildID)

	return nil
}

// applyMemberUpdate merge-patches an existing member. The incoming record is
// partial: user, roles, and nick always win, while deaf, mute, and joined-at
// fall back to the cached member when the payload omits them. Without a
// cached member the required fields cannot be synthesized, so the event is
// dropped.
func (e *Engine) applyMemberUpdate(ctx context.Context, record *corvid.MemberRecord) error {
	guildID := record.GuildID
	userID := record.User.ID

	existing, ok := e.members.Get(guildID, userID)
	if !ok {
		e.logger.Warn("member update for uncached member",
			"user_id", userID, "guild_id", guildID)
		e.metrics.drop(ctx, kindMember, dropReasonUncachedTarget)
		return nil
	}

	merged := *record
	if merged.Deaf == nil {
		deaf := existing.Deaf
		merged.Deaf = &deaf
	}
	if merged.Mute == nil {
		mute := existing.Mute
		merged.Mute = &mute
	}
	if merged.JoinedAt == nil && !existing.JoinedAt.IsZero() {
		joinedAt := existing.JoinedAt
		merged.JoinedAt = &joinedAt
	}

	member, err := e.builder.Member(guildID, &merged)
	if err != nil {
		return fmt.Errorf("apply member update: %w", err)
	}

	e.members.Put(member.GuildID, member.UserID, member)
	e.metrics.write(ctx, kindMember, 1)
	e.logger.Debug("merged member update", "user_id", member.UserID, "guild_id", member.GuildID)

	return nil
}

// applyMemberRemove removes the membership only; the user may still be
// globally known through other guilds.
func (e *Engine) applyMemberRemove(ctx context.Context, record *corvid.MemberRemoveRecord) error {
	if record.GuildID.IsZero() || record.User.ID.IsZero() {
		return fmt.Errorf("apply member remove: %w: missing id", corvid.ErrMalformedRecord)
	}

	e.members.Remove(record.GuildID, record.User.ID)
	e.metrics.remove(ctx, kindMember, 1)
	e.logger.Debug("removed member", "user_id", record.User.ID, "guild_id", record.GuildID)

	return nil
}

// applyMemberChunk caches one page of a bulk member resync. All records are
// built before any write.
func (e *Engine) applyMemberChunk(ctx context.Context, record *corvid.MemberChunkRecord) error {
	members := make([]corvid.Member, 0, len(record.Members))
	for i := range record.Members {
		member, err := e.builder.Member(record.GuildID, &record.Members[i])
		if err != nil {
			return fmt.Errorf("apply member chunk: %w", err)
		}
		members = append(members, member)
	}

	for _, member := range members {
		e.members.Put(member.GuildID, member.UserID, member)
	}
	e.metrics.write(ctx, kindMember, int64(len(members)))
	e.logger.Debug("processed member chunk", "count", len(members), "guild_id", record.GuildID)

	return nil
}

// applyEmojiUpdate upserts each emoji in the bulk payload individually; the
// guild's emoji scope is never cleared wholesale.
func (e *Engine) applyEmojiUpdate(ctx context.Context, record *corvid.EmojiUpdateRecord) error {
	if e.flags.Has(DropEmoji) {
		e.metrics.drop(ctx, kindEmoji, dropReasonPolicy)
		return nil
	}

	emoji := make([]corvid.CustomEmoji, 0, len(record.Emojis))
	for i := range record.Emojis {
		built, err := e.builder.Emoji(record.GuildID, &record.Emojis[i])
		if err != nil {
			return fmt.Errorf("apply emoji update: %w", err)
		}
		emoji = append(emoji, built)
	}

	for _, item := range emoji {
		e.emoji.Put(item.GuildID, item.ID, item)
	}
	e.metrics.write(ctx, kindEmoji, int64(len(emoji)))
	e.logger.Debug("processed emoji update", "count", len(emoji), "guild_id", record.GuildID)

	return nil
}

// applySelfUserUpdate intentionally ignores self-user updates; the client's
// own identity is tracked by the session layer, not this cache.
func (e *Engine) applySelfUserUpdate(ctx context.Context, record *corvid.UserRecord) error {
	e.metrics.drop(ctx, kindUser, dropReasonSelfUser)
	e.logger.Debug("ignoring self user update", "user_id", record.ID)

	return nil
}

// applyPresenceUpdate merge-patches the cached user's identity fields from
// the partial presence user, then replaces the presence itself unless the
// presence kind is disabled by policy. Without a cached user there is
// nothing to merge onto and the event is dropped.
func (e *Engine) applyPresenceUpdate(ctx context.Context, record *corvid.PresenceRecord) error {
	userID := record.User.ID
	if userID.IsZero() {
		return fmt.Errorf("apply presence update: %w: missing user id", corvid.ErrMalformedRecord)
	}

	existing, ok := e.users.Get(userID)
	if !ok {
		e.logger.Warn("presence update for uncached user", "user_id", userID)
		e.metrics.drop(ctx, kindPresence, dropReasonUncachedTarget)
		return nil
	}

	merged := record.User
	if merged.Username == nil {
		username := existing.Username
		merged.Username = &username
	}
	if merged.Discriminator == nil {
		discriminator := existing.Discriminator
		merged.Discriminator = &discriminator
	}
	if merged.Avatar == nil {
		avatar := existing.Avatar
		merged.Avatar = &avatar
	}
	if merged.Bot == nil {
		bot := existing.Bot
		merged.Bot = &bot
	}

	user, err := e.builder.User(&merged)
	if err != nil {
		return fmt.Errorf("apply presence update: %w", err)
	}

	cachePresence := !e.flags.Has(DropPresences)
	var presence corvid.Presence
	if cachePresence {
		presence, err = e.builder.Presence(record)
		if err != nil {
			return fmt.Errorf("apply presence update: %w", err)
		}
	}

	e.users.Put(user.ID, user)
	e.metrics.write(ctx, kindUser, 1)
	if cachePresence {
		e.presences.Put(presence.UserID, presence)
		e.metrics.write(ctx, kindPresence, 1)
	} else {
		e.metrics.drop(ctx, kindPresence, dropReasonPolicy)
	}
	e.logger.Debug("merged presence update", "user_id", user.ID, "presence_cached", cachePresence)

	return nil
}

// applyVoiceStateUpdate replaces a voice state under its guild. Voice states
// are guild-scoped in this cache, so a payload without a guild is
// unrecoverable and dropped.
func (e *Engine) applyVoiceStateUpdate(ctx context.Context, record *corvid.VoiceStateRecord) error {
	if record.GuildID.IsZero() {
		e.logger.Warn("not caching voice state without guild", "user_id", record.UserID)
		e.metrics.drop(ctx, kindVoiceState, dropReasonNoGuildScope)
		return nil
	}
	if e.flags.Has(DropVoiceStates) {
		e.metrics.drop(ctx, kindVoiceState, dropReasonPolicy)
		return nil
	}

	voiceState, err := e.builder.VoiceState(record)
	if err != nil {
		return fmt.Errorf("apply voice state update: %w", err)
	}

	e.voiceStates.Put(voiceState.GuildID, voiceState.UserID, voiceState)
	e.metrics.write(ctx, kindVoiceState, 1)
	e.logger.Debug("cached voice state", "user_id", voiceState.UserID, "guild_id", voiceState.GuildID)

	return nil
}
