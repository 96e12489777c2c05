package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"flashdeck/internal/deck"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Output formats for the decks command.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func newDecksCmd(a *app) *cobra.Command {
	var (
		output string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List saved decks, or print one deck's cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			w := cmd.OutOrStdout()
			if name != "" {
				cards, ok, err := a.ctrl.Deck(ctx, name)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no deck named %q", name)
				}
				return writeCards(w, output, cards)
			}
			decks, err := a.ctrl.Decks(ctx)
			if err != nil {
				return err
			}
			return writeDecks(w, output, decks)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "output format: text, json or yaml")
	cmd.Flags().StringVar(&name, "deck", "", "print the cards of this deck")
	return cmd
}

func writeDecks(w io.Writer, format string, decks []deck.DeckSummary) error {
	switch format {
	case outputText:
		if len(decks) == 0 {
			_, err := fmt.Fprintln(w, "no decks saved yet")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tCARDS")
		for _, d := range decks {
			fmt.Fprintf(tw, "%s\t%d\n", d.Name, d.Cards)
		}
		return tw.Flush()
	default:
		return encode(w, format, decks)
	}
}

func writeCards(w io.Writer, format string, cards []deck.Card) error {
	switch format {
	case outputText:
		for i, c := range cards {
			if _, err := fmt.Fprintf(w, "%d. %s\n   %s\n", i+1, c.Question, c.Answer); err != nil {
				return err
			}
		}
		return nil
	default:
		return encode(w, format, cards)
	}
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q: want text, json or yaml", format)
	}
}
