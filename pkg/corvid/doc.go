// Package corvid defines the neutral data model of the corvid gateway
// client: snowflake identifiers, the cached entity types (guilds, channels,
// roles, members, users, presences, voice states, custom emoji), the tagged
// gateway event envelope with its wire-shaped records, and the pub/sub
// contracts used to fan decoded events out to consumers.
package corvid
