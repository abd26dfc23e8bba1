package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	"github.com/leapstack-labs/bigsharp/internal/engine"
	"github.com/leapstack-labs/bigsharp/pkg/calc"
)

const (
	replPrompt     = "bigsharp> "
	replContPrompt = "     ...> "
)

// lineReader is the part of *readline.Instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive BigSharp session",
		Long: `Start an interactive session. Each statement is lowered to C# and the
result printed. Lines with unclosed braces continue on the next line.

Dot-commands evaluate expressions and inspect tokens; type .help to list
them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			historyFile := ""
			if dir := cc.Cfg.Resolve(filepath.Dir(cc.Cfg.Cache.Path)); dir != "" {
				if err := os.MkdirAll(dir, 0750); err == nil {
					historyFile = filepath.Join(dir, "repl_history")
				}
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          replPrompt,
				HistoryFile:     historyFile,
				AutoComplete:    newReplCompleter(),
				InterruptPrompt: "^C",
				EOFPrompt:       ".exit",
				Stdout:          cmd.OutOrStdout(),
				Stderr:          cmd.ErrOrStderr(),
			})
			if err != nil {
				return fmt.Errorf("failed to initialize REPL: %w", err)
			}
			defer func() { _ = rl.Close() }()

			cc.Renderer.Header("BigSharp REPL")
			cc.Renderer.Muted("Type .help for commands, .exit to quit")
			cc.Renderer.Println()

			return newSession(cc).loop(rl)
		},
	}
}

type session struct {
	eng  *engine.Engine
	calc *calc.Evaluator
	r    *output.Renderer
}

func newSession(cc *CommandContext) *session {
	return &session{eng: cc.Engine, calc: cc.Engine.Calculator(), r: cc.Renderer}
}

func (s *session) loop(rl lineReader) error {
	var buf strings.Builder
	depth := 0

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			depth = 0
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if s.dot(trimmed) {
					return nil
				}
				continue
			}
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth > 0 {
			rl.SetPrompt(replContPrompt)
			continue
		}
		rl.SetPrompt(replPrompt)

		s.lower(buf.String())
		buf.Reset()
		depth = 0
	}
}

func (s *session) lower(src string) {
	body, err := s.eng.Lower(src)
	if err != nil {
		s.r.Diagnostic("", engine.StageOf(err), err)
		return
	}
	s.r.Printf("%s", body)
}

// dot runs a dot-command and reports whether the session should end.
func (s *session) dot(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case ".exit", ".quit":
		return true

	case ".help":
		printReplHelp(s.r.Writer())

	case ".calc":
		if arg == "" {
			s.r.Warning("usage: .calc <expr>")
			return false
		}
		v, err := s.calc.Eval(arg)
		if err != nil {
			s.r.Diagnostic("", "", err)
			return false
		}
		s.r.Println(s.calc.Format(v))

	case ".tokens":
		if arg == "" {
			s.r.Warning("usage: .tokens <source>")
			return false
		}
		toks, err := s.eng.Tokens(arg, engine.StageRewrite)
		if err != nil {
			s.r.Diagnostic("", engine.StageOf(err), err)
			return false
		}
		if err := printTokens(s.r, withoutSpaces(toks)); err != nil {
			s.r.Diagnostic("", "", err)
		}

	default:
		s.r.Warning(fmt.Sprintf("unknown command %s (type .help for commands)", name))
	}
	return false
}

func printReplHelp(w io.Writer) {
	help := `Commands:
  .help            Show this help message
  .calc <expr>     Evaluate an expression
  .tokens <src>    Show the rewritten tokens of a snippet
  .exit / .quit    Leave the REPL

Anything else is lowered to C# and printed.`
	_, _ = fmt.Fprintln(w, help)
}

func newReplCompleter() *readline.PrefixCompleter {
	names := calc.Builtins()
	slices.Sort(names)
	fns := make([]readline.PrefixCompleterInterface, len(names))
	for i, name := range names {
		fns[i] = readline.PcItem(name + "(")
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".calc", fns...),
		readline.PcItem(".tokens"),
		readline.PcItem(".exit"),
		readline.PcItem(".quit"),
	)
}
