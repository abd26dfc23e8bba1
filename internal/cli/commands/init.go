package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/bigsharp/internal/cli/output"
	intconfig "github.com/leapstack-labs/bigsharp/internal/config"
)

const exampleSource = "hello.bs"

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new BigSharp project",
		Long: `Initialize a BigSharp project by writing a bigsharp.yaml holding the
default settings.

Use --example to also create hello.bs and a .gitignore, with the
configuration pointing at the example source.`,
		Example: `  # Initialize in current directory
  bigsharp init

  # Initialize with an example program
  bigsharp init --example

  # Initialize in a new directory
  bigsharp init my-project --example

  # Force overwrite existing config
  bigsharp init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(newRenderer(cmd), dir, force, example)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create an example program")

	return cmd
}

func runInit(r *output.Renderer, dir string, force, example bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, intconfig.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", intconfig.ConfigFileName)
	}

	settings := intconfig.Defaults()
	created := []string{intconfig.ConfigFileName}
	if example {
		settings.Source = exampleSource
		if err := copyTemplate("example", dir, force); err != nil {
			return fmt.Errorf("failed to initialize project: %w", err)
		}
		files, err := listTemplateFiles("example")
		if err != nil {
			return fmt.Errorf("failed to list template: %w", err)
		}
		created = append(created, files...)
	}

	data, err := yaml.Marshal(&settings)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	for _, f := range created {
		r.Success(f)
	}
	r.Println()
	r.Success("BigSharp project initialized!")
	r.Println()
	r.Println("Next steps:")
	if example {
		r.Println("  bigsharp compile --run   Compile hello.bs and run it")
	} else {
		r.Println("  bigsharp compile <file>  Compile a source to Program.cs")
	}
	r.Println("  bigsharp repl            Try statements interactively")

	return nil
}
