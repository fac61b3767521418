package main

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pitchside/playerfacts/internal/config"
	"github.com/pitchside/playerfacts/internal/extract"
	"github.com/pitchside/playerfacts/internal/fetch"
	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/resolve"
	"github.com/pitchside/playerfacts/internal/store"
	"github.com/pitchside/playerfacts/internal/strategy"
)

var (
	resolveClub            string
	resolveSeason          string
	resolvePlayer          string
	resolveLimit           int
	resolveIncludeExisting bool
	resolveDomain          string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve facts for rostered players",
	Long:  "Runs the strategy waterfall for each selected player and merges accepted candidates into the store, one audit entry per player per run.",
}

var resolveSchoolCmd = &cobra.Command{
	Use:   "school",
	Short: "Resolve high school facts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runResolve(cmd, model.FactSchool)
	},
}

var resolveBioCmd = &cobra.Command{
	Use:   "bio",
	Short: "Fill biographical facts from stats-site profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runResolve(cmd, model.FactBirthdate)
	},
}

func runResolve(cmd *cobra.Command, ft model.FactType) error {
	ctx := cmd.Context()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return eris.Wrap(err, "migrate store")
	}

	players, err := selectPlayers(cmd, st, ft)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		zap.L().Info("no players to resolve")
		return nil
	}

	dir := buildDirectory()
	runner := resolve.NewRunner(st, dir, cfg.Resolve.RequestDelay())

	zap.L().Info("batch starting",
		zap.String("run_id", runner.RunID()),
		zap.String("fact", string(ft)),
		zap.Int("players", len(players)),
	)

	var sum resolve.Summary
	if ft == model.FactSchool {
		sum, err = runner.RunSchool(ctx, players)
	} else {
		sum, err = runner.RunBio(ctx, players)
	}
	if err != nil {
		return eris.Wrap(err, "resolve run")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}

// buildDirectory wires the fetcher, club directory, extraction engine,
// and strategy order from config.
func buildDirectory() *strategy.Directory {
	renderer := fetch.NewHTTPRenderer(fetch.Options{
		UserAgent:   cfg.Fetch.UserAgent,
		Timeout:     time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		DefaultRate: rate.Limit(cfg.Fetch.RatePerSec),
	})

	domain := func(string) string { return "" }
	if resolveDomain != "" {
		domain = func(string) string { return resolveDomain }
	} else if clubs, err := config.LoadClubs(cfg.Clubs.Path); err != nil {
		zap.L().Warn("club directory unavailable, club-site strategies will skip",
			zap.String("path", cfg.Clubs.Path),
			zap.Error(err),
		)
	} else {
		domain = clubs.DomainFor
	}

	return strategy.DefaultDirectory(extract.NewEngine(), renderer, domain)
}

// selectPlayers picks the batch: one named player, or every player in
// scope that is still missing the fact.
func selectPlayers(cmd *cobra.Command, st store.Store, ft model.FactType) ([]model.Player, error) {
	ctx := cmd.Context()

	if resolvePlayer != "" {
		if resolveClub == "" || resolveSeason == "" {
			return nil, eris.New("--player requires --club and --season")
		}
		first, last, ok := splitPlayerName(resolvePlayer)
		if !ok {
			return nil, eris.Errorf("invalid --player %q, expected \"First Last\"", resolvePlayer)
		}
		p, err := st.GetPlayer(ctx, model.PlayerKey{
			Club: resolveClub, Season: resolveSeason, FirstName: first, LastName: last,
		})
		if err != nil {
			return nil, eris.Wrap(err, "select player")
		}
		return []model.Player{*p}, nil
	}

	filter := store.PlayerFilter{Club: resolveClub, Season: resolveSeason, Limit: resolveLimit}
	if filter.Limit <= 0 {
		filter.Limit = cfg.Resolve.DefaultLimit
	}
	if !resolveIncludeExisting {
		filter.Missing = ft
	}

	players, err := st.ListPlayers(ctx, filter)
	if err != nil {
		return nil, eris.Wrap(err, "select players")
	}
	return players, nil
}

// splitPlayerName splits "First Last" with multi-word last names kept
// whole ("Juan De La Torre" -> "Juan", "De La Torre").
func splitPlayerName(name string) (first, last string, ok bool) {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}

func init() {
	resolveCmd.PersistentFlags().StringVar(&resolveClub, "club", "", "restrict to one club")
	resolveCmd.PersistentFlags().StringVar(&resolveSeason, "season", "", "restrict to one season")
	resolveCmd.PersistentFlags().StringVar(&resolvePlayer, "player", "", `resolve a single player ("First Last"; requires --club and --season)`)
	resolveCmd.PersistentFlags().IntVar(&resolveLimit, "limit", 0, "max players per run (default from config)")
	resolveCmd.PersistentFlags().BoolVar(&resolveIncludeExisting, "include-existing", false, "also re-resolve players that already have the fact")
	resolveCmd.PersistentFlags().StringVar(&resolveDomain, "domain", "", "override the club website domain for club-site strategies")

	resolveCmd.AddCommand(resolveSchoolCmd)
	resolveCmd.AddCommand(resolveBioCmd)
	rootCmd.AddCommand(resolveCmd)
}
