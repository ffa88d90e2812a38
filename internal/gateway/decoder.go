package gateway

import (
	"encoding/json"
	"fmt"

	"corvid/pkg/corvid"
)

// DecodeEvent converts a dispatch frame's event name and raw payload into a
// validated event envelope. Event names this cache does not consume are
// reported as corvid.ErrUnknownEvent so callers can skip them.
func DecodeEvent(name string, sequence int64, data []byte) (*corvid.Event, error) {
	event := &corvid.Event{
		Kind:     corvid.EventKind(name),
		Sequence: sequence,
	}

	switch event.Kind {
	case corvid.EventChannelCreate, corvid.EventChannelUpdate, corvid.EventChannelDelete:
		record := &corvid.ChannelRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Channel = record
	case corvid.EventGuildCreate, corvid.EventGuildUpdate, corvid.EventGuildDelete:
		record := &corvid.GuildRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Guild = record
	case corvid.EventGuildRoleCreate, corvid.EventGuildRoleUpdate:
		record := &corvid.RoleEventRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Role = record
	case corvid.EventGuildRoleDelete:
		record := &corvid.RoleDeleteRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.RoleDelete = record
	case corvid.EventGuildMemberAdd, corvid.EventGuildMemberUpdate:
		record := &corvid.MemberRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Member = record
	case corvid.EventGuildMemberRemove:
		record := &corvid.MemberRemoveRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.MemberRemove = record
	case corvid.EventGuildMembersChunk:
		record := &corvid.MemberChunkRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.MemberChunk = record
	case corvid.EventGuildEmojisUpdate:
		record := &corvid.EmojiUpdateRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Emojis = record
	case corvid.EventUserUpdate:
		record := &corvid.UserRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.User = record
	case corvid.EventPresenceUpdate:
		record := &corvid.PresenceRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.Presence = record
	case corvid.EventVoiceStateUpdate:
		record := &corvid.VoiceStateRecord{}
		if err := unmarshalRecord(name, data, record); err != nil {
			return nil, err
		}
		event.VoiceState = record
	default:
		return nil, fmt.Errorf("decode %s: %w", name, corvid.ErrUnknownEvent)
	}

	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}

	return event, nil
}

// DecodeFrame parses a raw frame and decodes its event in one step.
// Non-dispatch frames yield a nil event without error.
func DecodeFrame(raw []byte) (*corvid.Event, error) {
	frame, err := ParseFrame(raw)
	if err != nil {
		return nil, err
	}
	if !frame.IsDispatch() {
		return nil, nil
	}

	return DecodeEvent(frame.Type, frame.Sequence, frame.Data)
}

// unmarshalRecord decodes one payload into its record shape.
func unmarshalRecord(name string, data []byte, record any) error {
	if err := json.Unmarshal(data, record); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}

	return nil
}
