package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/color-palette/api/harmony"
	"github.com/color-palette/api/presets"
	"github.com/color-palette/api/variations"
)

func relationshipNames() string {
	names := make([]string, 0, len(harmony.All()))
	for _, r := range harmony.All() {
		names = append(names, r.String())
	}
	return strings.Join(names, ", ")
}

func newRelatedCmd(opts *options) *cobra.Command {
	var (
		mode     string
		refs     []string
		fallback string
		count    int
	)

	cmd := &cobra.Command{
		Use:   "related",
		Short: "Generate colors in a harmonic relationship to reference colors",
		Long: `Generate colors related to the circular average of the reference colors.

Each new color joins the references for the next one, the way an editor fills
unlocked slots left to right.

Examples:
  palette related --mode complementary --ref "#ff6347"
  palette related --mode triadic --ref "#336699" --ref "#6699cc" -n 3
  palette related --mode analogous --fallback "#2e8b57" --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rel, ok := harmony.ParseRelationship(strings.ToLower(mode))
			if !ok {
				return fmt.Errorf("unknown mode %q (want one of %s)", mode, relationshipNames())
			}
			if count < 1 {
				return fmt.Errorf("-n must be at least 1")
			}

			pool := make([]string, 0, len(refs))
			for _, r := range refs {
				hex, err := parseHexArg(r)
				if err != nil {
					return err
				}
				pool = append(pool, hex)
			}
			if len(pool) == 0 && fallback != "" {
				hex, err := parseHexArg(fallback)
				if err != nil {
					return err
				}
				pool = append(pool, hex)
			}

			opts.printColors(cmd.OutOrStdout(), harmony.New(opts.rng).Many(pool, rel, count))
			return nil
		},
	}
	cmd.Flags().StringVarP(&mode, "mode", "m", "random", "Relationship: "+relationshipNames())
	cmd.Flags().StringArrayVarP(&refs, "ref", "r", nil, "Reference color (repeatable)")
	cmd.Flags().StringVar(&fallback, "fallback", "", "Base color used when no references are given")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of colors to generate")
	return cmd
}

func newPresetCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "List, generate from, or match curated palette presets",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the preset catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLABEL\tHUE\tSATURATION\tLIGHTNESS\tDESCRIPTION")
			fmt.Fprintln(w, "--\t-----\t---\t----------\t---------\t-----------")
			for _, p := range presets.Catalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Label, formatRange(p.Hue), formatRange(p.Saturation), formatRange(p.Lightness), p.Description)
			}
			return w.Flush()
		},
	}

	var count int
	generateCmd := &cobra.Command{
		Use:   "generate <preset-id>",
		Short: "Generate a palette inside a preset's ranges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := presets.Lookup(presets.ID(strings.ToLower(args[0])))
			if !ok {
				return fmt.Errorf("unknown preset %q; see 'palette preset list'", args[0])
			}
			if count < 1 {
				return fmt.Errorf("-n must be at least 1")
			}
			opts.printColors(cmd.OutOrStdout(), presets.Generate(opts.rng, p, count))
			return nil
		},
	}
	generateCmd.Flags().IntVarP(&count, "count", "n", 5, "Number of colors to generate")

	matchCmd := &cobra.Command{
		Use:   "match <hex>...",
		Short: "List every preset the given palette satisfies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			colors := make([]string, len(args))
			for i, a := range args {
				hex, err := parseHexArg(a)
				if err != nil {
					return err
				}
				colors[i] = hex
			}
			active := presets.ActivePresets(colors)
			if len(active) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No preset matches")
				return nil
			}
			for _, p := range active {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p.ID, p.Label)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(generateCmd)
	cmd.AddCommand(matchCmd)
	return cmd
}

func formatRange(r presets.Range) string {
	return fmt.Sprintf("%g-%g", r[0], r[1])
}

func newVariationsCmd(opts *options) *cobra.Command {
	var (
		kind  string
		count int
	)

	cmd := &cobra.Command{
		Use:   "variations <hex>",
		Short: "Derive tints, shades or tones from a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := parseHexArg(args[0])
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("-n must be at least 1")
			}
			colors := variations.Generate(variations.Kind(strings.ToLower(kind)), hex, count)
			if colors == nil {
				return fmt.Errorf("unknown kind %q (want tints, shades or tones)", kind)
			}
			opts.printColors(cmd.OutOrStdout(), colors)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(variations.KindTints), "tints, shades or tones")
	cmd.Flags().IntVarP(&count, "count", "n", variations.DefaultCount, "Number of steps")
	return cmd
}
