package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// cardSeparator splits a --card value into question and answer.
const cardSeparator = "::"

func newAddCmd(a *app) *cobra.Command {
	var (
		name  string
		cards []string
	)
	cmd := &cobra.Command{
		Use:   "add --deck NAME --card 'question::answer' [--card ...]",
		Short: "Build and save a deck without the interactive UI",
		Long: "add authors a deck from the command line. Every --card is added in\n" +
			"order and the deck is saved under --deck, replacing any deck of that name.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			for i, spec := range cards {
				q, ans, err := parseCardSpec(spec)
				if err != nil {
					return fmt.Errorf("card %d: %w", i+1, err)
				}
				if _, err := a.ctrl.AddCard(ctx, q, ans); err != nil {
					return fmt.Errorf("card %d: %w", i+1, err)
				}
			}
			res, err := a.ctrl.SaveDeck(ctx, name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deck %q saved successfully! (%d cards)\n", res.Name, res.Cards)
			return err
		},
	}
	cmd.Flags().StringVar(&name, "deck", "", "deck name")
	cmd.Flags().StringArrayVar(&cards, "card", nil, "card as question::answer (repeatable)")
	return cmd
}

// parseCardSpec splits "question::answer" at the first separator.
// Emptiness is left to the controller's validation.
func parseCardSpec(spec string) (question, answer string, err error) {
	q, ans, ok := strings.Cut(spec, cardSeparator)
	if !ok {
		return "", "", fmt.Errorf("%q: want question%sanswer", spec, cardSeparator)
	}
	return q, ans, nil
}
