// Package supervisor links the compositing core to the external supervisor
// process that owns window and workspace state. Frames flow in; commands
// flow out, fire-and-forget. The UI never assumes a command succeeded until
// a later frame reflects the change.
package supervisor

import (
	"encoding/json"
	"fmt"

	"github.com/glasspane/glasspane/internal/frame"
)

// CommandKind identifies an outbound supervisor command.
type CommandKind string

const (
	KindLaunchApp       CommandKind = "LAUNCH_APP"
	KindLaunchOrFocus   CommandKind = "LAUNCH_OR_FOCUS"
	KindFocusWindow     CommandKind = "FOCUS_WINDOW"
	KindSendInput       CommandKind = "SEND_INPUT"
	KindSelectWindows   CommandKind = "SELECT_WINDOWS"
	KindSwitchWorkspace CommandKind = "SWITCH_WORKSPACE"
)

// Command is a one-way notification to the supervisor. There is no response
// channel by design; effects are observed in later frames.
type Command struct {
	Kind    CommandKind     `json:"kind"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// LaunchPayload names an application to start or raise.
type LaunchPayload struct {
	AppID string `json:"app_id"`
}

// FocusPayload names the window to focus.
type FocusPayload struct {
	WindowID uint64 `json:"window_id"`
}

// InputPayload carries out-of-band text input (e.g. "shutdown").
type InputPayload struct {
	Text string `json:"text"`
}

// SelectPayload carries a finalized box selection.
type SelectPayload struct {
	WindowIDs []uint64 `json:"window_ids"`
}

// SwitchPayload names the workspace to activate.
type SwitchPayload struct {
	Index int `json:"index"`
}

// Envelope is one inbound line from the supervisor. Only frame messages are
// defined today; unknown types are skipped so a newer supervisor can extend
// the stream without breaking older shells.
type Envelope struct {
	Type  string       `json:"type"`
	Frame *frame.Frame `json:"frame,omitempty"`
}

// EnvelopeFrame is the Type value of a snapshot message.
const EnvelopeFrame = "frame"

// NewCommand marshals a typed payload into a Command.
func NewCommand(kind CommandKind, payload interface{}) (*Command, error) {
	var raw json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal command payload: %w", err)
		}
		raw = bytes
	}
	return &Command{Kind: kind, Payload: raw}, nil
}

// ParseEnvelope parses one inbound line.
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to parse supervisor message: %w", err)
	}
	return &env, nil
}
