package corvid

// User is a globally-scoped account known to the client.
type User struct {
	// ID is the stable account identifier.
	ID ID
	// Username is the account name, unique together with Discriminator.
	Username string
	// Discriminator is the four-digit tag distinguishing equal usernames.
	Discriminator string
	// Avatar is the avatar image hash, empty when unset.
	Avatar string
	// Bot reports whether the account is an automated account.
	Bot bool
}

// Tag returns the username#discriminator display form.
func (u User) Tag() string {
	return u.Username + "#" + u.Discriminator
}

// Mention returns a mention token for this user that can be sent in a message.
func (u User) Mention() string {
	return "<@" + u.ID.String() + ">"
}

// OnlineStatus is a presence availability state.
type OnlineStatus string

const (
	// StatusOnline marks an actively connected user.
	StatusOnline OnlineStatus = "online"
	// StatusIdle marks a connected but inactive user.
	StatusIdle OnlineStatus = "idle"
	// StatusDND marks a user that asked not to be notified.
	StatusDND OnlineStatus = "dnd"
	// StatusOffline marks a disconnected or invisible user.
	StatusOffline OnlineStatus = "offline"
)

// ActivityType classifies what a presence activity describes.
type ActivityType int

const (
	// ActivityPlaying is a "Playing X" activity.
	ActivityPlaying ActivityType = 0
	// ActivityStreaming is a "Streaming X" activity with a URL.
	ActivityStreaming ActivityType = 1
	// ActivityListening is a "Listening to X" activity.
	ActivityListening ActivityType = 2
	// ActivityWatching is a "Watching X" activity.
	ActivityWatching ActivityType = 3
)

// Activity is one rich-presence entry attached to a presence.
type Activity struct {
	// Name is the activity display name.
	Name string
	// Type classifies the activity.
	Type ActivityType
	// URL is the stream location for streaming activities.
	URL string
}

// Presence is the availability and activity state of one user.
//
// Presences are keyed by user id; the cache keeps at most one presence
// per user regardless of how many mutual guilds report it.
type Presence struct {
	// UserID identifies the user this presence belongs to.
	UserID ID
	// Status is the availability state.
	Status OnlineStatus
	// Activities lists current rich-presence entries.
	Activities []Activity
}
