package state

import "corvid/pkg/corvid"

// Point lookups. All report absence instead of failing; a kind disabled by
// policy always reports absent because its store is never populated.

// Guild returns the cached guild for id.
func (e *Engine) Guild(id corvid.ID) (corvid.Guild, bool) {
	return e.guilds.Get(id)
}

// User returns the cached user for id.
func (e *Engine) User(id corvid.ID) (corvid.User, bool) {
	return e.users.Get(id)
}

// Presence returns the cached presence for a user id.
func (e *Engine) Presence(id corvid.ID) (corvid.Presence, bool) {
	return e.presences.Get(id)
}

// Member returns the cached member for (guildID, id).
func (e *Engine) Member(guildID, id corvid.ID) (corvid.Member, bool) {
	return e.members.Get(guildID, id)
}

// Role returns the cached role for (guildID, id).
func (e *Engine) Role(guildID, id corvid.ID) (corvid.Role, bool) {
	return e.roles.Get(guildID, id)
}

// Channel returns the cached channel for (guildID, id).
func (e *Engine) Channel(guildID, id corvid.ID) (corvid.Channel, bool) {
	return e.channels.Get(guildID, id)
}

// Emoji returns the cached emoji for (guildID, id).
func (e *Engine) Emoji(guildID, id corvid.ID) (corvid.CustomEmoji, bool) {
	return e.emoji.Get(guildID, id)
}

// VoiceState returns the cached voice state for (guildID, id).
func (e *Engine) VoiceState(guildID, id corvid.ID) (corvid.VoiceState, bool) {
	return e.voiceStates.Get(guildID, id)
}

// Live views. A view obtained before later events still observes them.

// Guilds returns a live view over all cached guilds.
func (e *Engine) Guilds() View[corvid.Guild] {
	return e.guilds.Values()
}

// Users returns a live view over all cached users.
func (e *Engine) Users() View[corvid.User] {
	return e.users.Values()
}

// Presences returns a live view over all cached presences.
func (e *Engine) Presences() View[corvid.Presence] {
	return e.presences.Values()
}

// Members returns a live view over one guild's members.
func (e *Engine) Members(guildID corvid.ID) View[corvid.Member] {
	return e.members.ValuesIn(guildID)
}

// AllMembers returns a live flattened view over members of every guild.
func (e *Engine) AllMembers() View[corvid.Member] {
	return e.members.AllValues()
}

// Roles returns a live view over one guild's roles.
func (e *Engine) Roles(guildID corvid.ID) View[corvid.Role] {
	return e.roles.ValuesIn(guildID)
}

// AllRoles returns a live flattened view over roles of every guild.
func (e *Engine) AllRoles() View[corvid.Role] {
	return e.roles.AllValues()
}

// Channels returns a live view over one guild's channels.
func (e *Engine) Channels(guildID corvid.ID) View[corvid.Channel] {
	return e.channels.ValuesIn(guildID)
}

// AllChannels returns a live flattened view over channels of every guild.
func (e *Engine) AllChannels() View[corvid.Channel] {
	return e.channels.AllValues()
}

// Emojis returns a live view over one guild's emoji.
func (e *Engine) Emojis(guildID corvid.ID) View[corvid.CustomEmoji] {
	return e.emoji.ValuesIn(guildID)
}

// AllEmojis returns a live flattened view over emoji of every guild.
func (e *Engine) AllEmojis() View[corvid.CustomEmoji] {
	return e.emoji.AllValues()
}

// VoiceStates returns a live view over one guild's voice states.
func (e *Engine) VoiceStates(guildID corvid.ID) View[corvid.VoiceState] {
	return e.voiceStates.ValuesIn(guildID)
}

// AllVoiceStates returns a live flattened view over voice states of every guild.
func (e *Engine) AllVoiceStates() View[corvid.VoiceState] {
	return e.voiceStates.AllValues()
}
