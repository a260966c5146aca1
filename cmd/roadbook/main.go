package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/roadbook/internal/config"
	"github.com/kailas-cloud/roadbook/internal/version"
)

var (
	envName string
	noColor bool
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roadbook",
		Short:         "Multilingual assistant for professional drivers",
		Long:          "Answers driver questions from the operations manual and the authorised fuel station list.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envName, "env", config.GetEnv(), "configuration environment (config/<env>.yaml)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	root.PersistentPreRun = func(*cobra.Command, []string) {
		if noColor {
			color.NoColor = true
		}
	}

	root.AddCommand(newServeCmd(), newAskCmd(), newIngestCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
