package gateway

import (
	"testing"
)

func TestParseFrame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		raw          string
		wantErr      bool
		wantOp       int
		wantType     string
		wantSequence int64
		wantData     string
	}{
		{
			name:         "dispatch frame",
			raw:          `{"op":0,"t":"GUILD_CREATE","s":42,"d":{"id":"10","name":"home"}}`,
			wantOp:       OpDispatch,
			wantType:     "GUILD_CREATE",
			wantSequence: 42,
			wantData:     `{"id":"10","name":"home"}`,
		},
		{
			name:   "heartbeat ack has no payload",
			raw:    `{"op":11,"t":null,"s":null,"d":null}`,
			wantOp: OpHeartbeatACK,
		},
		{name: "invalid json", raw: `{"op":`, wantErr: true},
		{name: "missing op", raw: `{"t":"GUILD_CREATE","d":{}}`, wantErr: true},
		{name: "dispatch without event name", raw: `{"op":0,"s":1,"d":{}}`, wantErr: true},
		{name: "dispatch without payload", raw: `{"op":0,"t":"GUILD_CREATE","s":1}`, wantErr: true},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			frame, err := ParseFrame([]byte(testCase.raw))
			if testCase.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if frame.Op != testCase.wantOp {
				t.Fatalf("op = %d, want %d", frame.Op, testCase.wantOp)
			}
			if frame.Type != testCase.wantType {
				t.Fatalf("type = %q, want %q", frame.Type, testCase.wantType)
			}
			if frame.Sequence != testCase.wantSequence {
				t.Fatalf("sequence = %d, want %d", frame.Sequence, testCase.wantSequence)
			}
			if string(frame.Data) != testCase.wantData {
				t.Fatalf("data = %s, want %s", frame.Data, testCase.wantData)
			}
		})
	}
}
