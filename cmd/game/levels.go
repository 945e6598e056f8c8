package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List level files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		return listLevels(cmd.OutOrStdout(), e)
	},
}

func listLevels(w io.Writer, e *env) error {
	stems, err := e.loader.ListLevels()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tID\tNAME\tSIZE")
	for _, stem := range stems {
		cfg, err := e.loader.LoadLevel(stem)
		if err != nil {
			fmt.Fprintf(tw, "%s\t-\t-\t%v\n", stem, err)
			continue
		}
		cols := 0
		if len(cfg.Tiles) > 0 {
			cols = len(cfg.Tiles[0])
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%dx%d\n", stem, cfg.ID, cfg.Name, cols, len(cfg.Tiles))
	}
	return tw.Flush()
}
