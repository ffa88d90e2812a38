package state

import (
	"context"

	"corvid/pkg/corvid"
)

// Bulk loaders seed stores directly from already-built entities, bypassing
// the per-event merge rules. They are used for initial-snapshot ingestion
// and resync, typically from the nested collections of a guild-create
// payload. Entities with a zero id are skipped with a warning rather than
// poisoning a store with the absent sentinel.

// BulkCacheUsers seeds the global user store.
func (e *Engine) BulkCacheUsers(ctx context.Context, users []corvid.User) {
	count := int64(0)
	for _, user := range users {
		if user.ID.IsZero() {
			e.logger.Warn("skipping bulk user without id")
			continue
		}
		e.users.Put(user.ID, user)
		count++
	}
	e.metrics.write(ctx, kindUser, count)
}

// BulkCacheChannels seeds guild channels. Non-guild channels are not
// tracked by this cache and are skipped.
func (e *Engine) BulkCacheChannels(ctx context.Context, channels []corvid.Channel) {
	count := int64(0)
	for _, channel := range channels {
		if !channel.IsGuild() || channel.GuildID.IsZero() {
			e.logger.Warn("skipping bulk non-guild channel", "channel_id", channel.ID)
			continue
		}
		e.channels.Put(channel.GuildID, channel.ID, channel)
		count++
	}
	e.metrics.write(ctx, kindChannel, count)
}

// BulkCacheRoles seeds guild roles.
func (e *Engine) BulkCacheRoles(ctx context.Context, roles []corvid.Role) {
	count := int64(0)
	for _, role := range roles {
		if role.GuildID.IsZero() || role.ID.IsZero() {
			e.logger.Warn("skipping bulk role without scope", "role_id", role.ID)
			continue
		}
		e.roles.Put(role.GuildID, role.ID, role)
		count++
	}
	e.metrics.write(ctx, kindRole, count)
}

// BulkCacheMembers seeds guild members.
func (e *Engine) BulkCacheMembers(ctx context.Context, members []corvid.Member) {
	count := int64(0)
	for _, member := range members {
		if member.GuildID.IsZero() || member.UserID.IsZero() {
			e.logger.Warn("skipping bulk member without scope", "user_id", member.UserID)
			continue
		}
		e.members.Put(member.GuildID, member.UserID, member)
		count++
	}
	e.metrics.write(ctx, kindMember, count)
}

// BulkCacheEmoji seeds guild emoji. Respects the emoji retention policy.
func (e *Engine) BulkCacheEmoji(ctx context.Context, emoji []corvid.CustomEmoji) {
	if e.flags.Has(DropEmoji) {
		e.metrics.drop(ctx, kindEmoji, dropReasonPolicy)
		return
	}

	count := int64(0)
	for _, item := range emoji {
		if item.GuildID.IsZero() || item.ID.IsZero() {
			e.logger.Warn("skipping bulk emoji without scope", "emoji_id", item.ID)
			continue
		}
		e.emoji.Put(item.GuildID, item.ID, item)
		count++
	}
	e.metrics.write(ctx, kindEmoji, count)
}

// BulkCachePresences seeds presences. Respects the presence retention policy.
func (e *Engine) BulkCachePresences(ctx context.Context, presences []corvid.Presence) {
	if e.flags.Has(DropPresences) {
		e.metrics.drop(ctx, kindPresence, dropReasonPolicy)
		return
	}

	count := int64(0)
	for _, presence := range presences {
		if presence.UserID.IsZero() {
			e.logger.Warn("skipping bulk presence without user id")
			continue
		}
		e.presences.Put(presence.UserID, presence)
		count++
	}
	e.metrics.write(ctx, kindPresence, count)
}

// BulkCacheVoiceStates seeds guild voice states. Respects the voice state
// retention policy; guildless states are unrecoverable and skipped.
func (e *Engine) BulkCacheVoiceStates(ctx context.Context, voiceStates []corvid.VoiceState) {
	if e.flags.Has(DropVoiceStates) {
		e.metrics.drop(ctx, kindVoiceState, dropReasonPolicy)
		return
	}

	count := int64(0)
	for _, voiceState := range voiceStates {
		if voiceState.GuildID.IsZero() || voiceState.UserID.IsZero() {
			e.logger.Warn("skipping bulk voice state without guild", "user_id", voiceState.UserID)
			continue
		}
		e.voiceStates.Put(voiceState.GuildID, voiceState.UserID, voiceState)
		count++
	}
	e.metrics.write(ctx, kindVoiceState, count)
}
