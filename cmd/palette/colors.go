package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/color-palette/api/colorspace"
)

func parseHexArg(arg string) (string, error) {
	hex, err := colorspace.ParseHex(arg)
	if err != nil {
		return "", fmt.Errorf("%q: %w", arg, err)
	}
	return hex, nil
}

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <hex>",
		Short: "Show a color in every supported color space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := parseHexArg(args[0])
			if err != nil {
				return err
			}
			rgb := colorspace.HexToRGB(hex)
			hsl := colorspace.HexToHSL(hex)
			lab := colorspace.HexToOklab(hex)
			lch := colorspace.HexToOklch(hex)
			match := opts.names.Lookup(hex)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "HEX\t%s\n", opts.swatch(hex))
			fmt.Fprintf(w, "RGB\t%.0f, %.0f, %.0f\n", rgb.R, rgb.G, rgb.B)
			fmt.Fprintf(w, "HSL\t%.1f°, %.1f%%, %.1f%%\n", hsl.H, hsl.S, hsl.L)
			fmt.Fprintf(w, "OKLAB\t%.4f, %.4f, %.4f\n", lab.L, lab.A, lab.B)
			fmt.Fprintf(w, "OKLCH\t%.2f%%, %.4f, %.1f°\n", lch.L, lch.C, lch.H)
			fmt.Fprintf(w, "NAME\t%s\n", describeMatch(match.Name, match.CSSName))
			return w.Flush()
		},
	}
}

func describeMatch(name string, cssName *string) string {
	if cssName == nil {
		return name
	}
	return fmt.Sprintf("%s (css: %s)", name, *cssName)
}

func newNameCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "name <hex>",
		Short: "Name a color by its perceptually nearest neighbour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := parseHexArg(args[0])
			if err != nil {
				return err
			}
			match := opts.names.Lookup(hex)
			fmt.Fprintln(cmd.OutOrStdout(), describeMatch(match.Name, match.CSSName))
			return nil
		},
	}
}

func newSearchCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find color names by substring or close spelling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := opts.names.Search(args[0], limit)
			if len(results) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No colors match %q\n", args[0])
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, e := range results {
				fmt.Fprintf(w, "%s\t%s\n", e.Name, opts.swatch(e.Hex))
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of results")
	return cmd
}
