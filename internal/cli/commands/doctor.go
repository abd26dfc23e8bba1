package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/bigsharp/internal/cli/config"
	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	"github.com/leapstack-labs/bigsharp/internal/engine"
)

// Check statuses.
const (
	StatusPass  = "pass"
	StatusWarn  = "warn"
	StatusError = "error"
)

// HealthCheck is the result of one doctor check.
type HealthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DoctorOutput is the JSON output for the doctor command.
type DoctorOutput struct {
	ProjectRoot string        `json:"project_root"`
	Checks      []HealthCheck `json:"checks"`
	Errors      int           `json:"errors"`
	Warnings    int           `json:"warnings"`
}

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project and toolchain setup",
		Long: `Check that a BigSharp project is ready to compile and run:

- the configuration file and settings
- the configured source, which is compiled without writing output
- the compile cache database and its schema
- the dotnet binary and the generated console project`,
		Example: `  bigsharp doctor
  bigsharp doctor --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc := NewCommandContextWithoutEngine(cmd)
			out := runDoctor(cmd, cc)
			if cc.Renderer.EffectiveMode() == output.ModeJSON {
				return cc.Renderer.JSON(out)
			}
			renderDoctorText(cc.Renderer, out)
			return nil
		},
	}
}

func runDoctor(cmd *cobra.Command, cc *CommandContext) *DoctorOutput {
	out := &DoctorOutput{ProjectRoot: cc.Cfg.ProjectRoot}
	add := func(name, status, format string, args ...any) {
		out.Checks = append(out.Checks, HealthCheck{Name: name, Status: status, Message: fmt.Sprintf(format, args...)})
		switch status {
		case StatusError:
			out.Errors++
		case StatusWarn:
			out.Warnings++
		}
	}

	if path := config.GetConfigFileUsed(); path != "" {
		add("config", StatusPass, "using %s", path)
	} else {
		add("config", StatusWarn, "no config file found, using defaults")
	}

	checkSource(cmd, cc, add)

	if !cc.Cfg.Cache.Enabled {
		add("cache", StatusWarn, "disabled")
	} else {
		path := cc.Cfg.Resolve(cc.Cfg.Cache.Path)
		store, err := openCache(path, cc.Logger)
		if err != nil {
			add("cache", StatusError, "%v", err)
		} else {
			version, err := store.SchemaVersion()
			_ = store.Close()
			if err != nil {
				add("cache", StatusError, "failed to read schema version: %v", err)
			} else {
				add("cache", StatusPass, "%s (schema v%d)", path, version)
			}
		}
	}

	if bin, err := cc.Toolchain.Locate(); err != nil {
		add("toolchain", StatusError, "%v", err)
	} else {
		add("toolchain", StatusPass, "%s", bin)
	}

	switch ok, err := cc.Toolchain.HasProject(); {
	case err != nil:
		add("project", StatusError, "%v", err)
	case ok:
		add("project", StatusPass, "%s", cc.Toolchain.ProjectDir)
	default:
		add("project", StatusWarn, "%s not created yet, the first run creates it", cc.Toolchain.ProjectDir)
	}

	return out
}

func checkSource(cmd *cobra.Command, cc *CommandContext, add func(name, status, format string, args ...any)) {
	if cc.Cfg.Source == "" {
		add("source", StatusWarn, "no source configured")
		return
	}
	path := cc.Cfg.Resolve(cc.Cfg.Source)
	src, err := os.ReadFile(path) //nolint:gosec // configured source
	if err != nil {
		add("source", StatusError, "%v", err)
		return
	}

	cfg := *cc.Cfg
	cfg.Cache.Enabled = false
	eng, err := createEngine(&cfg, cc.Logger)
	if err != nil {
		add("source", StatusError, "%v", err)
		return
	}
	defer func() { _ = eng.Close() }()

	res, err := eng.Compile(cmd.Context(), path, string(src))
	if err != nil {
		add("source", StatusError, "%s failed in %s: %v", path, engine.StageOf(err), err)
		return
	}
	add("source", StatusPass, "%s compiles (%d tokens)", path, res.Tokens)
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	title := cases.Title(language.English)
	s := r.Styles()

	r.Header("BigSharp Doctor")
	if out.ProjectRoot != "" {
		r.Muted(out.ProjectRoot)
	}
	r.Println()

	for _, c := range out.Checks {
		style := s.Success
		switch c.Status {
		case StatusWarn:
			style = s.Warning
		case StatusError:
			style = s.Error
		}
		r.Printf("%s %s %s\n", style.Render(fmt.Sprintf("%-5s", c.Status)), s.Bold.Render(fmt.Sprintf("%-10s", title.String(c.Name))), c.Message)
	}

	r.Println()
	r.Println(output.FormatKeyValue("Errors", fmt.Sprint(out.Errors)))
	r.Println(output.FormatKeyValue("Warnings", fmt.Sprint(out.Warnings)))
}
