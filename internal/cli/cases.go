package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tatianab/mystery-game/internal/archive"
	"github.com/tatianab/mystery-game/internal/story"
)

func (a *app) casesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List the embedded cases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var rows [][]string
			for _, name := range story.Names() {
				c, err := story.Load(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, c.Title, strconv.Itoa(len(c.Levels))})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Case", "Title", "Levels"}, rows))
			return nil
		},
	}
}

func (a *app) archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "List closed cases, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := archive.Open(a.cfg.ArchiveDB)
			if err != nil {
				return err
			}
			defer store.Close()

			files, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No closed cases yet.")
				return nil
			}

			rows := make([][]string, 0, len(files))
			for _, cf := range files {
				rows = append(rows, []string{
					cf.CompletedAt.Local().Format(time.DateTime),
					cf.Player,
					cf.Case,
					strconv.Itoa(len(cf.Clues)),
					cf.ID,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Closed", "Detective", "Case", "Clues", "ID"}, rows))
			return nil
		},
	}
	cmd.Flags().IntP("limit", "l", archive.DefaultLimit, "Max results")
	return cmd
}
