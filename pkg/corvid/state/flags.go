package state

import "strings"

// Flags selects optional entity kinds the engine does not retain, trading
// completeness for memory. Core identity kinds (guilds, users, members,
// roles, channels) are always retained.
//
// Flags are fixed at engine construction; the apply path only reads them.
type Flags uint32

const (
	// DropPresences disables retention of presence updates.
	DropPresences Flags = 1 << iota
	// DropVoiceStates disables retention of voice states.
	DropVoiceStates
	// DropEmoji disables retention of custom emoji.
	DropEmoji
)

// Has reports whether every flag in query is set.
func (f Flags) Has(query Flags) bool {
	return f&query == query
}

// String lists the set flags for logging.
func (f Flags) String() string {
	if f == 0 {
		return "none"
	}

	names := make([]string, 0, 3)
	if f.Has(DropPresences) {
		names = append(names, "drop_presences")
	}
	if f.Has(DropVoiceStates) {
		names = append(names, "drop_voice_states")
	}
	if f.Has(DropEmoji) {
		names = append(names, "drop_emoji")
	}

	return strings.Join(names, "|")
}
