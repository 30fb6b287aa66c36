package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/riverfjs/mdview-go/internal/highlight"
)

var themesCSS string

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List syntax highlighting themes",
	Long:  `List the available chroma styles, or print the stylesheet of one with --css.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if themesCSS != "" {
			return highlight.WriteCSS(cmd.OutOrStdout(), themesCSS)
		}
		for _, name := range highlight.Themes() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	themesCmd.Flags().StringVar(&themesCSS, "css", "", "print the stylesheet of this theme")
}
