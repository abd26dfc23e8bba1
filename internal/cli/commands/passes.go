package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	"github.com/leapstack-labs/bigsharp/pkg/rewrite"
)

// PassJSON is the JSON shape of one rewrite pass.
type PassJSON struct {
	Order       int    `json:"order"`
	ID          string `json:"id"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description"`
}

// NewPassesCommand creates the passes command.
func NewPassesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: "List the rewrite passes",
		Long: `List the rewrite passes in the order they run, and whether the current
configuration enables them. Passes are switched off under the passes
key of bigsharp.yaml:

  passes:
    memoize: false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			return listPasses(cc.Renderer, cc.Cfg.Passes)
		},
	}
}

func listPasses(r *output.Renderer, switches map[string]bool) error {
	defs := rewrite.Passes()
	rows := make([]PassJSON, len(defs))
	for i, def := range defs {
		on, set := switches[def.ID]
		rows[i] = PassJSON{
			Order:       i + 1,
			ID:          def.ID,
			Enabled:     !set || on,
			Description: def.Description,
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(rows)
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(r.Writer())
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"#", "Pass", "Enabled", "Description"})
	for _, p := range rows {
		state := r.Styles().Success.Render("yes")
		if !p.Enabled {
			state = r.Styles().Muted.Render("no")
		}
		tw.AppendRow(table.Row{p.Order, p.ID, state, p.Description})
	}
	tw.Render()
	r.Printf("%d passes\n", len(rows))
	return nil
}
