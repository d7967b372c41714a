package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/souschef/internal/domain"
)

func newAskCmd(app *App) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "ask <utterance...>",
		Short: "Say something to the assistant, e.g. \"souschef ask what's next\"",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reply, err := app.Engine.Ask(cmd.Context(), strings.Join(args, " "), apply)
			if err != nil {
				return explain(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", true, "act on the request (move steps, set timers, scale)")
	return cmd
}

// classification is the yaml shape printed by "classify -o yaml".
type classification struct {
	Query  string        `yaml:"query"`
	Intent domain.Intent `yaml:"intent"`
}

func newClassifyCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "classify <utterance...>",
		Short: "Show which intent an utterance maps to, without acting on it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			intent := app.Assistant.Classify(query)
			out := cmd.OutOrStdout()

			switch output {
			case "text":
				fmt.Fprintln(out, intent.String())
				return nil
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(classification{Query: query, Intent: intent}); err != nil {
					return fmt.Errorf("encoding intent: %w", err)
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown output format %q (want text or yaml)", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or yaml")
	return cmd
}

func newSubstituteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "substitute <ingredient...>",
		Aliases: []string{"sub"},
		Short:   "List substitutes for an ingredient",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := domain.SubstituteIntent(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), app.Assistant.Respond(intent, domain.NewSessionState(), nil))
			return nil
		},
	}
}

func newExplainCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <technique...>",
		Short: "Explain a cooking technique such as folding or deglazing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			intent := domain.ExplainIntent(strings.Join(args, " "))
			fmt.Fprintln(cmd.OutOrStdout(), app.Assistant.Respond(intent, domain.NewSessionState(), nil))
			return nil
		},
	}
}
