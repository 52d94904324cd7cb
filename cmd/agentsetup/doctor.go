package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/suhani2210/agentsetup/internal/doctor"
	"github.com/suhani2210/agentsetup/internal/run/local"
)

// doctorCmd inspects a provisioned checkout without mutating it.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of a provisioned environment",
	Run: func(cmd *cobra.Command, _ []string) {
		root, cfg, log, err := loadSetup(cmd)
		if err != nil {
			log.Fatal().Err(err).Msg("load config")
		}

		env := local.New()

		defer func() { _ = env.Close() }()

		checks := doctor.Run(context.Background(), root, cfg, env)

		for _, c := range checks {
			mark := "ok  "

			if !c.OK {
				mark = "FAIL"
				if c.Severity == doctor.SeverityWarn {
					mark = "warn"
				}
			}

			fmt.Printf("[%s] %-24s %s\n", mark, c.Name, c.Detail)
		}

		if !doctor.Healthy(checks) {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
