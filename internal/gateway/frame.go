package gateway

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Opcodes of the frames this package understands.
const (
	// OpDispatch carries a named event payload.
	OpDispatch = 0
	// OpHeartbeatACK acknowledges a heartbeat. No payload.
	OpHeartbeatACK = 11
)

// Frame is one raw gateway frame split into its envelope fields.
type Frame struct {
	// Op is the frame opcode.
	Op int
	// Type is the event name, set only for dispatch frames.
	Type string
	// Sequence is the dispatch sequence number, zero when absent.
	Sequence int64
	// Data is the raw event payload, valid only for dispatch frames.
	Data []byte
}

// IsDispatch reports whether the frame carries a named event.
func (f Frame) IsDispatch() bool {
	return f.Op == OpDispatch
}

// ParseFrame splits a raw gateway frame into its envelope fields without
// decoding the payload.
func ParseFrame(raw []byte) (Frame, error) {
	if !gjson.ValidBytes(raw) {
		return Frame{}, fmt.Errorf("parse frame: invalid json")
	}

	parsed := gjson.ParseBytes(raw)
	op := parsed.Get("op")
	if !op.Exists() {
		return Frame{}, fmt.Errorf("parse frame: missing op")
	}

	frame := Frame{
		Op:       int(op.Int()),
		Type:     parsed.Get("t").String(),
		Sequence: parsed.Get("s").Int(),
	}

	if frame.IsDispatch() {
		if frame.Type == "" {
			return Frame{}, fmt.Errorf("parse frame: dispatch frame missing event name")
		}
		data := parsed.Get("d")
		if !data.Exists() {
			return Frame{}, fmt.Errorf("parse frame %s: missing payload", frame.Type)
		}
		frame.Data = []byte(data.Raw)
	}

	return frame, nil
}
