package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tatianab/mystery-game/internal/models"
)

func (a *app) savesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "saves [dir]",
		Short: "List saved games",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.SaveDir
			if len(args) == 1 {
				dir = args[0]
			}
			saves, err := models.ListSaves(dir)
			if err != nil {
				return fmt.Errorf("list saves: %w", err)
			}
			if len(saves) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No saved games in %s.\n", dir)
				return nil
			}

			rows := make([][]string, 0, len(saves))
			for _, s := range saves {
				rows = append(rows, []string{s.Path, s.Player, strconv.Itoa(s.Level + 1)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Save", "Detective", "Level"}, rows))
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print a saved game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.SaveFile
			if len(args) == 1 {
				path = args[0]
			}
			rec, err := models.NewSaveFile(path).Load()
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()
			switch format {
			case "yaml":
				b, err := yaml.Marshal(rec)
				if err != nil {
					return err
				}
				_, err = out.Write(b)
				return err
			case "json":
				b, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			case "text":
				fmt.Fprint(out, describeSave(rec))
				return nil
			}
			return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, yaml or json")
	return cmd
}

func describeSave(rec models.SaveRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Detective: %s\n", rec.PlayerName)
	fmt.Fprintf(&b, "Level: %d\n", rec.Level+1)
	for _, l := range []struct {
		title string
		items []string
	}{
		{"Clues", rec.Clues},
		{"Inventory", rec.Inventory},
		{"Witness statements", rec.Statements},
		{"Suspect motives", rec.Motives},
	} {
		if len(l.items) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", l.title)
		for _, item := range l.items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	return b.String()
}
