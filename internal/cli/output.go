package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// Status prints connection state; JSON output stays a pure frame stream
func (o *Output) Status(msg string) {
	if o.format != "json" {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

// Frame prints one pushed frame. JSON output writes it verbatim on its own line.
func (o *Output) Frame(data []byte) {
	if o.format == "json" {
		_, _ = fmt.Fprintln(o.w, string(data))
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")

	var n Notification
	if err := json.Unmarshal(data, &n); err != nil || n.Action == "" {
		// Free-text messages arrive as-is
		display := strings.ReplaceAll(string(data), "\n", " ")
		_, _ = fmt.Fprintf(o.w, "[%s] message: %s\n", timestamp, display)
		return
	}

	switch n.Action {
	case "player-join":
		_, _ = fmt.Fprintf(o.w, "[%s] %s joined\n", timestamp, n.Name)
	case "player-vote":
		_, _ = fmt.Fprintf(o.w, "[%s] %s voted %s\n", timestamp, n.Name, n.CardTitle)
	case "new":
		_, _ = fmt.Fprintf(o.w, "[%s] %s started a new round\n", timestamp, n.Name)
	case "player-disconnect":
		_, _ = fmt.Fprintf(o.w, "[%s] %s left\n", timestamp, n.Name)
	default:
		_, _ = fmt.Fprintf(o.w, "[%s] %s: %s\n", timestamp, n.Action, n.Name)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case JoinResult:
		o.printJoinResult(v)
	case MessageResult:
		_, _ = fmt.Fprintln(o.w, v.Message)
	case []Participant:
		o.printParticipants(v)
	case []Vote:
		o.printVotes(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// JoinResult response type (matches API)
type JoinResult struct {
	Message  string `json:"message"`
	PlayerID string `json:"playerId"`
}

// MessageResult response type
type MessageResult struct {
	Message string `json:"message"`
}

// Participant response type
type Participant struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"playerName"`
	RoomName     string    `json:"roomName"`
	RoomSecret   string    `json:"roomSecret,omitempty"`
	ConnectionID string    `json:"connectionId,omitempty"`
	JoinedAt     time.Time `json:"joinedAt"`
}

// Vote response type
type Vote struct {
	ID         string          `json:"id"`
	PlayerID   string          `json:"playerId"`
	PlayerName string          `json:"playerName"`
	RoomName   string          `json:"roomName"`
	CardValue  json.RawMessage `json:"cardValue"`
	CardTitle  string          `json:"cardTitle"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Notification is a frame pushed to a channel
type Notification struct {
	Action    string          `json:"action"`
	Name      string          `json:"name"`
	ID        string          `json:"id"`
	CardValue json.RawMessage `json:"cardValue,omitempty"`
	CardTitle string          `json:"cardTitle,omitempty"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printJoinResult(j JoinResult) {
	_, _ = fmt.Fprintln(o.w, j.Message)
	_, _ = fmt.Fprintf(o.w, "Player ID: %s\n", j.PlayerID)
}

func (o *Output) printParticipants(ps []Participant) {
	_, _ = fmt.Fprintf(o.w, "Players (%d):\n", len(ps))
	for _, p := range ps {
		state := "offline"
		if p.ConnectionID != "" {
			state = "connected"
		}
		_, _ = fmt.Fprintf(o.w, "  - %s (%s) in %s - %s\n", p.PlayerName, p.ID, p.RoomName, state)
	}
}

func (o *Output) printVotes(vs []Vote) {
	_, _ = fmt.Fprintf(o.w, "Votes (%d):\n", len(vs))
	for _, v := range vs {
		_, _ = fmt.Fprintf(o.w, "  - %s: %s [%s] at %s\n",
			v.PlayerName, v.CardTitle, string(v.CardValue), v.Timestamp.Format(time.RFC3339))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
