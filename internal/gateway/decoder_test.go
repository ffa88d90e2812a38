package gateway

import (
	"errors"
	"testing"

	"corvid/pkg/corvid"
)

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		event   string
		data    string
		wantErr error
		check   func(t *testing.T, event *corvid.Event)
	}{
		{
			name:  "guild create",
			event: "GUILD_CREATE",
			data:  `{"id":"10","name":"home","member_count":3}`,
			check: func(t *testing.T, event *corvid.Event) {
				if event.Guild.ID != 10 || event.Guild.Name != "home" {
					t.Fatalf("guild = %+v, want id 10 name home", event.Guild)
				}
			},
		},
		{
			name:  "member add with numeric and string ids",
			event: "GUILD_MEMBER_ADD",
			data:  `{"guild_id":"10","user":{"id":400,"username":"alice"},"roles":["300"],"deaf":false,"mute":true,"joined_at":"2024-03-01T12:00:00Z"}`,
			check: func(t *testing.T, event *corvid.Event) {
				member := event.Member
				if member.GuildID != 10 || member.User.ID != 400 {
					t.Fatalf("member = %+v, want guild 10 user 400", member)
				}
				if member.Mute == nil || !*member.Mute {
					t.Fatal("mute not decoded")
				}
				if member.JoinedAt == nil || member.JoinedAt.IsZero() {
					t.Fatal("joined_at not decoded")
				}
			},
		},
		{
			name:  "presence update with partial user",
			event: "PRESENCE_UPDATE",
			data:  `{"user":{"id":"400"},"guild_id":"10","status":"idle","activities":[{"name":"chess","type":0}]}`,
			check: func(t *testing.T, event *corvid.Event) {
				presence := event.Presence
				if presence.User.ID != 400 || presence.User.Username != nil {
					t.Fatalf("presence user = %+v, want partial user 400", presence.User)
				}
				if presence.Status != "idle" || len(presence.Activities) != 1 {
					t.Fatalf("presence = %+v, want idle with one activity", presence)
				}
			},
		},
		{
			name:  "role delete",
			event: "GUILD_ROLE_DELETE",
			data:  `{"guild_id":"10","role_id":"300"}`,
			check: func(t *testing.T, event *corvid.Event) {
				if event.RoleDelete.GuildID != 10 || event.RoleDelete.RoleID != 300 {
					t.Fatalf("role delete = %+v, want guild 10 role 300", event.RoleDelete)
				}
			},
		},
		{
			name:  "emoji update",
			event: "GUILD_EMOJIS_UPDATE",
			data:  `{"guild_id":"10","emojis":[{"id":"500","name":"blob","animated":true}]}`,
			check: func(t *testing.T, event *corvid.Event) {
				if len(event.Emojis.Emojis) != 1 || event.Emojis.Emojis[0].Name != "blob" {
					t.Fatalf("emojis = %+v, want one blob emoji", event.Emojis)
				}
			},
		},
		{
			name:    "unconsumed event name",
			event:   "TYPING_START",
			data:    `{"channel_id":"100"}`,
			wantErr: corvid.ErrUnknownEvent,
		},
		{
			name:    "payload shape mismatch",
			event:   "GUILD_CREATE",
			data:    `[1,2,3]`,
			wantErr: nil,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			event, err := DecodeEvent(testCase.event, 1, []byte(testCase.data))
			if testCase.check == nil {
				if err == nil {
					t.Fatal("expected error")
				}
				if testCase.wantErr != nil && !errors.Is(err, testCase.wantErr) {
					t.Fatalf("error = %v, want %v", err, testCase.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if event.Sequence != 1 {
				t.Fatalf("sequence = %d, want 1", event.Sequence)
			}
			testCase.check(t, event)
		})
	}
}

func TestDecodeFrame(t *testing.T) {
	t.Parallel()

	event, err := DecodeFrame([]byte(`{"op":0,"t":"GUILD_CREATE","s":7,"d":{"id":"10","name":"home"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Kind != corvid.EventGuildCreate || event.Sequence != 7 {
		t.Fatalf("event = %+v, want guild create at sequence 7", event)
	}

	event, err = DecodeFrame([]byte(`{"op":11,"t":null,"s":null,"d":null}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event != nil {
		t.Fatalf("event = %+v, want non-dispatch frames skipped", event)
	}

	if _, err := DecodeFrame([]byte(`not json`)); err == nil {
		t.Fatal("expected parse error")
	}
}
