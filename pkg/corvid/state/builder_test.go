package state

import (
	"errors"
	"testing"
	"time"

	"corvid/pkg/corvid"
)

func TestRecordBuilderChannelVariants(t *testing.T) {
	t.Parallel()

	builder := NewRecordBuilder()

	tests := []struct {
		name      string
		record    *corvid.ChannelRecord
		wantErr   bool
		wantText  bool
		wantVoice bool
	}{
		{
			name: "text channel gets text branch",
			record: &corvid.ChannelRecord{
				ID: 100, Type: int(corvid.ChannelTypeText), GuildID: 10,
				Topic: "rules", NSFW: true, RateLimitPerUser: 5,
			},
			wantText: true,
		},
		{
			name: "news channel gets text branch",
			record: &corvid.ChannelRecord{
				ID: 100, Type: int(corvid.ChannelTypeNews), GuildID: 10,
			},
			wantText: true,
		},
		{
			name: "voice channel gets voice branch",
			record: &corvid.ChannelRecord{
				ID: 100, Type: int(corvid.ChannelTypeVoice), GuildID: 10,
				Bitrate: 64000, UserLimit: 8,
			},
			wantVoice: true,
		},
		{
			name: "category has no variant branch",
			record: &corvid.ChannelRecord{
				ID: 100, Type: int(corvid.ChannelTypeCategory), GuildID: 10,
			},
		},
		{
			name:    "missing id is malformed",
			record:  &corvid.ChannelRecord{Type: int(corvid.ChannelTypeText), GuildID: 10},
			wantErr: true,
		},
		{
			name:    "unknown type is malformed",
			record:  &corvid.ChannelRecord{ID: 100, Type: 99, GuildID: 10},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			channel, err := builder.Channel(testCase.record)
			if testCase.wantErr {
				if !errors.Is(err, corvid.ErrMalformedRecord) {
					t.Fatalf("error = %v, want wrapped ErrMalformedRecord", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (channel.Text != nil) != testCase.wantText {
				t.Fatalf("text branch present = %v, want %v", channel.Text != nil, testCase.wantText)
			}
			if (channel.Voice != nil) != testCase.wantVoice {
				t.Fatalf("voice branch present = %v, want %v", channel.Voice != nil, testCase.wantVoice)
			}
		})
	}
}

func TestRecordBuilderMemberGuildFallback(t *testing.T) {
	t.Parallel()

	builder := NewRecordBuilder()
	joined := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	record := &corvid.MemberRecord{
		GuildID:  10,
		User:     corvid.UserRecord{ID: 400},
		Nick:     "al",
		RoleIDs:  []corvid.ID{300},
		Deaf:     boolPtr(true),
		JoinedAt: timePtr(joined),
	}

	member, err := builder.Member(0, record)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if member.GuildID != 10 {
		t.Fatalf("guild id = %d, want fallback to record value 10", member.GuildID)
	}
	if !member.Deaf || member.Mute {
		t.Fatalf("member = %+v, want deaf true, omitted mute false", member)
	}
	if !member.JoinedAt.Equal(joined) {
		t.Fatalf("joined at = %v, want %v", member.JoinedAt, joined)
	}

	record.GuildID = 0
	if _, err := builder.Member(0, record); !errors.Is(err, corvid.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapped ErrMalformedRecord without any guild id", err)
	}
}

func TestRecordBuilderUserPartialFields(t *testing.T) {
	t.Parallel()

	builder := NewRecordBuilder()
	user, err := builder.User(&corvid.UserRecord{ID: 400, Username: strPtr("alice")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" || user.Discriminator != "" || user.Bot {
		t.Fatalf("user = %+v, want only username populated", user)
	}

	if _, err := builder.User(&corvid.UserRecord{}); !errors.Is(err, corvid.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapped ErrMalformedRecord for missing id", err)
	}
	if _, err := builder.User(nil); !errors.Is(err, corvid.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapped ErrMalformedRecord for nil record", err)
	}
}

func TestRecordBuilderPresenceDefaultsStatus(t *testing.T) {
	t.Parallel()

	builder := NewRecordBuilder()
	presence, err := builder.Presence(&corvid.PresenceRecord{
		User: corvid.UserRecord{ID: 400},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presence.Status != corvid.StatusOffline {
		t.Fatalf("status = %q, want empty status to default to offline", presence.Status)
	}
}

func TestRecordBuilderEmojiRequiresGuild(t *testing.T) {
	t.Parallel()

	builder := NewRecordBuilder()
	if _, err := builder.Emoji(0, &corvid.EmojiRecord{ID: 500, Name: "blob"}); !errors.Is(err, corvid.ErrMalformedRecord) {
		t.Fatalf("error = %v, want wrapped ErrMalformedRecord without guild id", err)
	}

	emoji, err := builder.Emoji(10, &corvid.EmojiRecord{ID: 500, Name: "blob", Animated: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emoji.GuildID != 10 || !emoji.Animated {
		t.Fatalf("emoji = %+v, want guild 10 and animated", emoji)
	}
}
