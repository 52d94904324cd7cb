// Package tui renders the human-facing completion output: the banner and the
// next-steps block. Purely informational; nothing downstream consumes it.
package tui

import (
	"fmt"

	"github.com/muesli/termenv"
	"github.com/suhani2210/agentsetup/internal/provision"
	"github.com/suhani2210/agentsetup/internal/scaffold"
)

// PrintBanner outputs the completion banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-green gradient
	s1 := termenv.String("   ___                  __  _____     __          ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String("  / _ |___ ____ ___ ___/ /_/ __/__ / /___ _____ ").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" / __ / _ `/ -_) _ \\/ __/ _ \\_\\ \\/ -_) __/ // / _ \\").Foreground(p.Color("#4ade80"))
	s4 := termenv.String("/_/ |_\\_, /\\__/_//_/\\__/_//_/___/\\__/\\__/\\_,_/ .__/").Foreground(p.Color("#a3e635"))
	s5 := termenv.String("     /___/                                  /_/    ").Foreground(p.Color("#bef264"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}

// PrintNextSteps renders the manual follow-ups after a completed run.
func PrintNextSteps(report provision.Report) {
	p := termenv.ColorProfile()

	header := termenv.String("Setup Complete").Foreground(p.Color("#4ade80")).Bold()
	fmt.Println(header)

	if failures := report.Failures(); len(failures) > 0 {
		warn := termenv.String("Some steps failed; the environment may be incomplete:").Foreground(p.Color("#facc15"))
		fmt.Println(warn)

		for _, f := range failures {
			fmt.Printf("  - %s: %v\n", f.Name, f.Err)
		}

		fmt.Println()
	}

	fmt.Println("Next steps:")

	step := 1

	if report.EnvOutcome == scaffold.EnvCreated {
		fmt.Printf("  %d. Edit .env and add your API keys (OPENAI_API_KEY required, NEWS_API_KEY optional)\n", step)
		step++
	}

	fmt.Printf("  %d. Activate the environment:  %s\n", step, report.Venv.ActivateHint())
	fmt.Printf("  %d. Try the demo:              python demo.py\n", step+1)
	fmt.Printf("  %d. Launch the web interface:  python web/app.py\n", step+2)
	fmt.Println()
}
