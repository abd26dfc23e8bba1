package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	"github.com/leapstack-labs/bigsharp/pkg/calc"
)

// CalcJSON is the JSON shape of an evaluation.
type CalcJSON struct {
	Expr  string `json:"expr"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// NewCalcCommand creates the calc command.
func NewCalcCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "calc <expr>",
		Short: "Evaluate an expression with arbitrary precision",
		Long: `Evaluate an arithmetic expression with the decimal kernel at the
configured precision. ^ is exponentiation, // is floor division and
functions such as sqrt, ln, exp, pow, root and round are available.`,
		Example: `  bigsharp calc '1/3'
  bigsharp calc 'sqrt(2)' --precision 50
  bigsharp calc 'round(2^0.5, 4)'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			ev, err := newCalculator(cc)
			if err != nil {
				return err
			}

			expr := strings.Join(args, " ")
			v, err := ev.Eval(expr)
			if err != nil {
				return err
			}
			return printValue(cc.Renderer, ev, expr, v)
		},
	}
}

// newCalculator builds an evaluator from the settings without opening the
// compile cache.
func newCalculator(cc *CommandContext) (*calc.Evaluator, error) {
	cfg := *cc.Cfg
	cfg.Cache.Enabled = false
	eng, err := createEngine(&cfg, cc.Logger)
	if err != nil {
		return nil, err
	}
	return eng.Calculator(), nil
}

func printValue(r *output.Renderer, ev *calc.Evaluator, expr string, v calc.Value) error {
	text := ev.Format(v)
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(CalcJSON{Expr: expr, Value: text, Type: v.Type()})
	}
	r.Println(text)
	return nil
}
