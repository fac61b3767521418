package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pitchside/playerfacts/internal/model"
	"github.com/pitchside/playerfacts/internal/store"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Inspect stored players",
}

// -- players list --

var playersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List players and their resolved facts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		club, _ := cmd.Flags().GetString("club")
		season, _ := cmd.Flags().GetString("season")
		missing, _ := cmd.Flags().GetString("missing")
		limit, _ := cmd.Flags().GetInt("limit")

		filter := store.PlayerFilter{Club: club, Season: season, Limit: limit}
		if missing != "" {
			ft, err := model.ParseFactType(missing)
			if err != nil {
				return err
			}
			filter.Missing = ft
		}

		players, err := st.ListPlayers(ctx, filter)
		if err != nil {
			return eris.Wrap(err, "players list")
		}

		if len(players) == 0 {
			fmt.Fprintln(os.Stderr, "No players found.")
			return nil
		}

		formatPlayersList(os.Stdout, players)
		return nil
	},
}

// -- players show --

var playersShowCmd = &cobra.Command{
	Use:   "show <first> <last>",
	Short: "Show one player's full record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		club, _ := cmd.Flags().GetString("club")
		season, _ := cmd.Flags().GetString("season")
		if club == "" || season == "" {
			return eris.New("players show requires --club and --season")
		}

		p, err := st.GetPlayer(ctx, model.PlayerKey{
			Club: club, Season: season, FirstName: args[0], LastName: args[1],
		})
		if err != nil {
			return eris.Wrap(err, "players show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

// formatPlayersList writes a tabular player summary to w.
func formatPlayersList(out io.Writer, players []model.Player) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CLUB\tSEASON\tPLAYER\tHIGH SCHOOL\tLOCATION\tBIRTHDATE\tSOURCE")
	_, _ = fmt.Fprintln(w, "----\t------\t------\t-----------\t--------\t---------\t------")

	for _, p := range players {
		location := p.HighSchoolCity
		if p.HighSchoolState != "" {
			if location != "" {
				location += ", "
			}
			location += p.HighSchoolState
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Club,
			p.Season,
			p.FullName(),
			p.HighSchool,
			location,
			p.Birthdate,
			p.HighSchoolSourceName,
		)
	}
	_ = w.Flush()
}

func init() {
	playersListCmd.Flags().String("club", "", "filter by club")
	playersListCmd.Flags().String("season", "", "filter by season")
	playersListCmd.Flags().String("missing", "", "only players missing a fact (school, birthdate, birthplace, citizenship)")
	playersListCmd.Flags().Int("limit", 100, "max number of players to display")

	playersShowCmd.Flags().String("club", "", "club name (required)")
	playersShowCmd.Flags().String("season", "", "season label (required)")

	playersCmd.AddCommand(playersListCmd)
	playersCmd.AddCommand(playersShowCmd)
	rootCmd.AddCommand(playersCmd)
}
