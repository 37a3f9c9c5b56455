// Corridors is a seeded, single-player roguelike run through a school:
// fights, shops, rest stops and hallway events, all driven by quiz
// questions. The whole run is deterministic for a given seed.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hollis/corridors/battle"
	"github.com/hollis/corridors/content"
	"github.com/hollis/corridors/engine"
	"github.com/hollis/corridors/engine/save"
	"github.com/hollis/corridors/logger"
	"github.com/hollis/corridors/prefs"
	"github.com/hollis/corridors/tui"
	"github.com/hollis/corridors/types"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagSeed    uint32
	flagHasSeed bool
	flagContent string
	flagResume  string
)

func main() {
	logger.Init()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "corridors",
		Short:        "A quiz-powered roguelike run through the school halls",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
	}
	root.PersistentFlags().StringVar(&flagContent, "content", "",
		"load content from a directory instead of the built-in set")

	play := &cobra.Command{
		Use:   "play",
		Short: "Start the terminal UI (the default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
	}
	play.Flags().Uint32Var(&flagSeed, "seed", 0, "start immediately with a fixed seed")
	play.Flags().StringVar(&flagResume, "resume", "", "start from a resume code")
	root.Flags().Uint32Var(&flagSeed, "seed", 0, "start immediately with a fixed seed")
	root.Flags().StringVar(&flagResume, "resume", "", "start from a resume code")

	inspect := &cobra.Command{
		Use:   "inspect <code>",
		Short: "Summarize a resume code without playing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}

	verify := &cobra.Command{
		Use:   "check [dir]",
		Short: "Validate a content directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := flagContent
			if len(args) > 0 {
				dir = args[0]
			}
			return runCheck(dir)
		},
	}

	ver := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("corridors %s (commit %s, built %s)\n", version, commit, date)
		},
	}

	root.AddCommand(play, inspect, verify, ver)
	return root
}

func loadCatalog() (*content.Catalog, error) {
	if flagContent != "" {
		return content.Load(flagContent)
	}
	return content.LoadBase()
}

func runPlay(cmd *cobra.Command) error {
	cat, err := loadCatalog()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}

	quiz := battle.NewQuiz(cat)
	eng := engine.New(cat, quiz)

	p, err := prefs.Load()
	if err != nil {
		logger.Log.WithError(err).Warn("preferences unavailable, continuing without")
		p = nil
	}

	flagHasSeed = cmd.Flags().Changed("seed")
	return tui.RunWith(eng, quiz, p, startState(eng))
}

// startState pre-applies --seed / --resume so the TUI opens mid-run.
func startState(eng *engine.Engine) *types.RunState {
	s := engine.InitialState()
	if flagResume != "" {
		st, err := save.Decode(flagResume)
		if err != nil {
			logger.Log.WithError(err).Warn("ignoring bad --resume code")
		} else {
			s = eng.Reduce(s, types.LoadState{State: st})
		}
		return s
	}
	if flagHasSeed {
		s = eng.Reduce(s, types.NewRun{Seed: flagSeed, HasSeed: true})
	}
	return s
}

func runInspect(code string) error {
	st, err := save.Decode(code)
	if err != nil {
		return err
	}
	fmt.Printf("seed:    %d\n", st.Seed)
	fmt.Printf("screen:  %s\n", st.Screen)
	fmt.Printf("node:    %s\n", st.CurrentNodeID)
	fmt.Printf("hp:      %d/%d\n", st.HP, st.MaxHP)
	fmt.Printf("gold:    %d\n", st.Gold)
	fmt.Printf("deck:    %d cards\n", len(st.Deck))
	fmt.Printf("cleared: %d nodes\n", len(st.LockedNodeIDs))
	fmt.Printf("missed:  %d questions\n", len(st.WrongAnswers))
	return nil
}

func runCheck(dir string) error {
	if dir == "" {
		return fmt.Errorf("name a content directory: corridors check ./mycontent")
	}
	cat, err := content.Load(dir)
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d cards, %d enemies, %d encounters, %d events, %d questions)\n",
		dir, len(cat.CardList), len(cat.Enemies), len(cat.EncounterList),
		len(cat.EventList), len(cat.QuestionList))
	return nil
}
