package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		data     any
		wantData bool
	}{
		{name: "withPayload", event: EventNoteDelete, data: "some-id", wantData: true},
		{name: "structPayload", event: EventNoteMove, data: NoteMove{ID: "n1", Position: Position{X: 1, Y: 2}}, wantData: true},
		{name: "noPayload", event: EventClear, data: nil, wantData: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := Encode(tt.event, tt.data)
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			var env Envelope
			if err := json.Unmarshal(frame, &env); err != nil {
				t.Fatalf("round trip: %v", err)
			}
			if env.Event != tt.event {
				t.Fatalf("event=%q, want %q", env.Event, tt.event)
			}
			if got := env.Data != nil; got != tt.wantData {
				t.Fatalf("data present=%v, want %v", got, tt.wantData)
			}
			if !tt.wantData && strings.Contains(string(frame), "data") {
				t.Fatalf("payload-less frame should omit the data field: %s", frame)
			}
		})
	}
}

func TestInitialState_NullCanvas(t *testing.T) {
	raw, err := json.Marshal(InitialState{Notes: []StickyNote{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	// The client checks canvasState strictly against null.
	if !strings.Contains(string(raw), `"canvasState":null`) {
		t.Fatalf("want explicit null canvasState, got %s", raw)
	}
}
