package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/wahlandcase/deploygate/internal/actions"
	"github.com/wahlandcase/deploygate/internal/config"
	"github.com/wahlandcase/deploygate/internal/event"
	"github.com/wahlandcase/deploygate/internal/gate"
	"github.com/wahlandcase/deploygate/internal/githost"
	"github.com/wahlandcase/deploygate/internal/ui"

	"github.com/spf13/cobra"
)

type exitError struct {
	code int
}

func (e exitError) Error() string {
	return fmt.Sprintf("exit with code %d", e.code)
}

func (e exitError) ExitCode() int {
	return e.code
}

var (
	configPath string
	dryRun     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "deploygate",
		Short:         "Deployment gatekeeper for a shared deploy branch",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Decide whether the triggering change should and can be deployed",
		RunE:  runCheck,
	}
	checkCmd.Flags().StringVar(&configPath, "config", config.DefaultPath, "Path to the gatekeeper config file")
	checkCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Evaluate and print the decision without writing step outputs")

	rootCmd.AddCommand(checkCmd)

	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	ui.ForceCIProfile()

	if !dryRun {
		if err := githost.CheckAuth(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ev, err := event.FromEnv()
	if err != nil {
		return err
	}

	g := gate.New(cfg, ev, githost.Client{}, os.Stdout)

	decision, err := g.Evaluate()
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(ui.Info(fmt.Sprintf("note_raw: %s", decision.Note)))
		fmt.Println(ui.Info(fmt.Sprintf("note_clean: %s", decision.QuotedNote)))
		fmt.Println(ui.Info(fmt.Sprintf("confirm: %t", decision.Required)))
	} else {
		if err := actions.SetOutput("note_raw", decision.Note); err != nil {
			return err
		}
		if err := actions.SetOutput("note_clean", decision.QuotedNote); err != nil {
			return err
		}
		if err := actions.SetOutput("confirm", strconv.FormatBool(decision.Required)); err != nil {
			return err
		}
	}

	if decision.Blocked {
		fmt.Println(ui.Blocked(decision.Explanation))
		if !dryRun {
			actions.Error(decision.Explanation)
		}
		return exitError{code: 1}
	}

	return nil
}
