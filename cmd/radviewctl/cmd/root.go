package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"radview/internal/app"
	"radview/internal/logging"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "radviewctl",
		Short: "a CLI to inspect radview studies",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			level := logging.ParseLevel(strings.ToUpper(logLevel))
			slog.SetDefault(logging.Logger(os.Stdout, false, level))
		},
		Run: func(cmd *cobra.Command, args []string) {
			printCommandTree(cmd, 0)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewInspectCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	return cmd
}

func printCommandTree(cmd *cobra.Command, indent int) {
	fmt.Println(strings.Repeat("\t", indent), cmd.Use+":", cmd.Short)
	for _, subCmd := range cmd.Commands() {
		printCommandTree(subCmd, indent+1)
	}
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(gitsha)
		},
	}
}

// NewInspectCmd prints the contents of a study file: its images and their
// annotation and measurement collections.
func NewInspectCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <study.rvstudy>",
		Short: "list the images and findings of a study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			study, err := app.ReadStudy(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("study version %d, %d image(s)\n", study.Version, len(study.Images))
			for _, img := range study.Images {
				name := img.ID
				if img.Path != "" {
					name = img.Path
				}
				fmt.Printf("\n%s\n", name)
				for _, a := range img.Annotations {
					line := fmt.Sprintf("  annotation %-10s %d point(s)", a.Kind, len(a.Points))
					if a.Text != "" {
						line += fmt.Sprintf(" %q", a.Text)
					}
					fmt.Println(line)
				}
				for _, m := range img.Measurements {
					fmt.Printf("  measure    %-10s %.1f %s\n", m.Kind, m.Value, m.Unit)
				}
			}
			return nil
		},
	}
}
