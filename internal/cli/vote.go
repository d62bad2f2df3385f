package cli

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

var errNoSession = errors.New("no player: run join first or pass --id and --name")

func newVoteCmd() *cobra.Command {
	var id, name, card, title string

	cmd := &cobra.Command{
		Use:   "vote",
		Short: "Vote with a card in the current room",
		Long: `Vote with a card. Numeric cards are sent as numbers, anything else
(such as "?" or "coffee") as text. The player and room come from the
session file unless --id and --name are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resolveSession(id, name)
			if err != nil {
				return err
			}
			if title == "" {
				title = card
			}

			req := map[string]any{
				"playerId":   session.PlayerID,
				"playerName": session.PlayerName,
				"roomName":   session.RoomName,
				"roomSecret": session.RoomSecret,
				"cardValue":  cardValue(card),
				"cardTitle":  title,
			}
			var result MessageResult

			if err := client.Post("/api/v1/votes", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Player id (default from session)")
	cmd.Flags().StringVar(&name, "name", "", "Player name (default from session)")
	cmd.Flags().StringVar(&card, "card", "", "Card value (required)")
	cmd.Flags().StringVar(&title, "title", "", "Card title (defaults to the card value)")
	_ = cmd.MarkFlagRequired("card")

	return cmd
}

func newVotesCmd() *cobra.Command {
	var room, secret string

	cmd := &cobra.Command{
		Use:   "votes",
		Short: "Show the vote history of a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			if room == "" {
				session, err := cfg.LoadSession()
				if err != nil {
					return err
				}
				room, secret = session.RoomName, session.RoomSecret
			}
			if room == "" {
				return errors.New("--room is required without a session")
			}

			var result []Vote
			if err := client.Get("/api/v1/votes"+roomQuery(room, secret), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&room, "room", "", "Room name (default from session)")
	cmd.Flags().StringVar(&secret, "secret", "", "Room secret")

	return cmd
}

// resolveSession overlays explicit flags on the saved session
func resolveSession(id, name string) (Session, error) {
	session, err := cfg.LoadSession()
	if err != nil {
		return session, err
	}
	if id != "" {
		session.PlayerID = id
	}
	if name != "" {
		session.PlayerName = name
	}
	if session.PlayerID == "" || session.PlayerName == "" {
		return session, errNoSession
	}
	return session, nil
}

// cardValue sends numeric cards as JSON numbers
func cardValue(card string) any {
	if _, err := strconv.ParseFloat(card, 64); err == nil && json.Valid([]byte(card)) {
		return json.Number(card)
	}
	return card
}
