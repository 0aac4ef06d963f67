package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/color-palette/api/contrast"
)

func newContrastCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "contrast <fg> [bg]...",
		Short: "Check WCAG contrast of a foreground against backgrounds",
		Long: `Check WCAG 2.1 contrast of a foreground color.

Without backgrounds the color is checked against light (#ffffff),
gray (#808080) and dark (#000000).`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fg, err := parseHexArg(args[0])
			if err != nil {
				return err
			}

			backgrounds := contrast.DefaultBackgrounds
			if len(args) > 1 {
				backgrounds = make([]contrast.Background, 0, len(args)-1)
				for _, a := range args[1:] {
					hex, err := parseHexArg(a)
					if err != nil {
						return err
					}
					backgrounds = append(backgrounds, contrast.Background{Name: hex, Hex: hex})
				}
			}

			results := contrast.Evaluate(fg, backgrounds)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "BACKGROUND\tRATIO\tLEVEL")
			for i, r := range results {
				fmt.Fprintf(w, "%s\t%.2f:1\t%s\n", opts.backgroundLabel(backgrounds[i]), r.Ratio, r.Level)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), contrast.Describe(results))
			return nil
		},
	}
}

func (o *options) backgroundLabel(bg contrast.Background) string {
	if bg.Name == bg.Hex {
		return o.swatch(bg.Hex)
	}
	return bg.Name + " " + o.swatch(bg.Hex)
}
