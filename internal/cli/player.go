package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newJoinCmd() *cobra.Command {
	var name, room, secret string

	cmd := &cobra.Command{
		Use:   "join",
		Short: "Enter a room as a new player",
		Long: `Enter a room as a new player. The returned player id is saved to the
session file so that vote and listen can reuse it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"playerName": name,
				"roomName":   room,
			}
			if cmd.Flags().Changed("secret") {
				req["roomSecret"] = secret
			}
			var result JoinResult

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			// Save session
			session := Session{
				PlayerID:   result.PlayerID,
				PlayerName: name,
				RoomName:   room,
				RoomSecret: secret,
			}
			if err := cfg.SaveSession(session); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player name (required)")
	cmd.Flags().StringVar(&room, "room", "", "Room name (required)")
	cmd.Flags().StringVar(&secret, "secret", "", "Room secret")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("room")

	return cmd
}

func newPlayersCmd() *cobra.Command {
	var room, secret string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "List players, optionally of a single room",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Participant

			if err := client.Get("/api/v1/players"+roomQuery(room, secret), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room name")
	cmd.Flags().StringVar(&secret, "secret", "", "Room secret")

	return cmd
}
