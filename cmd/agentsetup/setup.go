package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/suhani2210/agentsetup/internal/provision"
	"github.com/suhani2210/agentsetup/internal/run/local"
	"github.com/suhani2210/agentsetup/internal/tui"
)

// setupCmd runs the full provisioning sequence.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the development environment",
	Long: `Runs the provisioning sequence: interpreter detection, virtual environment
creation, pip upgrade, dependency install, package markers, .env from
template, and working directories. Installer failures abort the remainder;
everything else is best-effort.`,
	Run: func(cmd *cobra.Command, _ []string) {
		root, cfg, log, err := loadSetup(cmd)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}

		skipInstall, _ := cmd.Flags().GetBool("skip-install")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		env := local.New()

		defer func() { _ = env.Close() }()

		plan := provision.NewPlan(root, cfg, env, log, provision.Options{SkipInstall: skipInstall})

		if dryRun {
			fmt.Println("Planned steps:")

			for i, name := range plan.StepNames() {
				fmt.Printf("  %d. %s\n", i+1, name)
			}

			return
		}

		ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

		defer cancel()

		report := plan.Execute(ctx)

		if !report.Completed {
			log.Error().Msg("setup aborted")
			os.Exit(1)
		}

		tui.PrintBanner()
		tui.PrintNextSteps(report)
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)

	setupCmd.Flags().Bool("skip-install", false, "Skip the network-bound pip steps (offline re-run)")
	setupCmd.Flags().Bool("dry-run", false, "Print the planned steps without executing them")
}
