package main

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchside/playerfacts/internal/model"
)

var (
	importCSVPath string
	importClub    string
	importSeason  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a season roster from CSV",
	Long:  "Loads players from a CSV with first_name and last_name columns. Existing players keep their resolved facts.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		players, err := readRosterCSV(importCSVPath, importClub, importSeason)
		if err != nil {
			return err
		}

		n, err := st.ImportPlayers(ctx, players)
		if err != nil {
			return eris.Wrap(err, "import roster")
		}

		zap.L().Info("import complete",
			zap.String("club", importClub),
			zap.String("season", importSeason),
			zap.Int("rows", len(players)),
			zap.Int("inserted", n),
		)
		return nil
	},
}

// readRosterCSV parses a roster file. The header row names the columns;
// first_name and last_name are required, order is free.
func readRosterCSV(path, club, season string) ([]model.Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open roster csv %s", path)
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, eris.Wrapf(err, "read roster header %s", path)
	}

	firstIdx, lastIdx := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "first_name", "first":
			firstIdx = i
		case "last_name", "last":
			lastIdx = i
		}
	}
	if firstIdx < 0 || lastIdx < 0 {
		return nil, eris.Errorf("roster csv %s needs first_name and last_name columns", path)
	}

	var players []model.Player
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read roster row %s", path)
		}

		first := strings.TrimSpace(record[firstIdx])
		last := strings.TrimSpace(record[lastIdx])
		if first == "" || last == "" {
			continue
		}
		players = append(players, model.Player{
			Club: club, Season: season, FirstName: first, LastName: last,
		})
	}

	if len(players) == 0 {
		return nil, eris.Errorf("roster csv %s has no player rows", path)
	}
	return players, nil
}

func init() {
	importCmd.Flags().StringVar(&importCSVPath, "csv", "", "path to roster CSV (required)")
	importCmd.Flags().StringVar(&importClub, "club", "", "club name (required)")
	importCmd.Flags().StringVar(&importSeason, "season", "", "season label (required)")
	_ = importCmd.MarkFlagRequired("csv")
	_ = importCmd.MarkFlagRequired("club")
	_ = importCmd.MarkFlagRequired("season")
	rootCmd.AddCommand(importCmd)
}
