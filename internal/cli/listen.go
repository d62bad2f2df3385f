package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/scrumpoker/internal/transport/ws"
)

// NewRoundCommand is the stdin line that starts a new round
const NewRoundCommand = "/new"

func newListenCmd() *cobra.Command {
	var id, name string

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Open a channel and stream room notifications",
		Long: `Open the player's WebSocket channel and print every notification
pushed to it.

Lines typed on stdin are sent to the room:
  /new      start a new round
  <text>    send a free-text message

Press Ctrl+C to disconnect.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(id, name)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return listen(ctx, session, cmd.InOrStdin(), NewOutput(cfg.Output, cmd.OutOrStdout()))
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Player id (default from session)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (default from session)")

	return cmd
}

func listen(ctx context.Context, session Session, in io.Reader, out *Output) error {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, client.ChannelURL(session.PlayerID, session.PlayerName), nil)
	if err != nil {
		if resp != nil {
			defer func() { _ = resp.Body.Close() }()
			body, _ := io.ReadAll(resp.Body)
			return responseError(resp.StatusCode, body)
		}
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	out.Status(fmt.Sprintf("Connected to room %s as %s", session.RoomName, session.PlayerName))

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- data:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Stdin reaching EOF leaves the channel open for listening
	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			out.Status("Disconnected")
			return nil

		case err := <-readErr:
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				out.Status("Disconnected")
				return nil
			}
			return fmt.Errorf("stream error: %w", err)

		case data := <-frames:
			out.Frame(data)

		case line := <-lines:
			frame, ok, err := frameForLine(line)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := conn.WriteJSON(frame); err != nil {
				if errors.Is(err, websocket.ErrCloseSent) {
					return nil
				}
				return fmt.Errorf("send failed: %w", err)
			}
		}
	}
}

// frameForLine maps a stdin line onto a channel frame; blank lines are skipped
func frameForLine(line string) (ws.Frame, bool, error) {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return ws.Frame{}, false, nil
	case NewRoundCommand:
		return ws.Frame{Action: ws.ActionNewGame}, true, nil
	}

	msg, err := json.Marshal(line)
	if err != nil {
		return ws.Frame{}, false, err
	}
	return ws.Frame{Action: ws.ActionSendMessage, Message: msg}, true, nil
}
