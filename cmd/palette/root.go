package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/color-palette/api/naming"
)

// options carries the persistent flags and what they resolve to.
type options struct {
	seed      int64
	plain     bool
	namesPath string

	rng   *rand.Rand
	names *naming.Database
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "palette",
		Short: "Color palette toolkit",
		Long: `palette converts, names, generates and checks colors from the terminal.

Generation is random unless --seed is given, in which case the same seed and
arguments always print the same colors.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
	}

	rootCmd.PersistentFlags().Int64Var(&opts.seed, "seed", 0, "Seed for reproducible generation (0 picks one from the clock)")
	rootCmd.PersistentFlags().BoolVar(&opts.plain, "plain", false, "Print hex values without color swatches")
	rootCmd.PersistentFlags().StringVar(&opts.namesPath, "names", os.Getenv("NAMES_CORPUS_PATH"), "JSON color-name corpus to use instead of the built-in one")

	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newNameCmd(opts))
	rootCmd.AddCommand(newSearchCmd(opts))
	rootCmd.AddCommand(newRelatedCmd(opts))
	rootCmd.AddCommand(newPresetCmd(opts))
	rootCmd.AddCommand(newVariationsCmd(opts))
	rootCmd.AddCommand(newContrastCmd(opts))

	return rootCmd
}

func (o *options) setup() error {
	seed := o.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	o.rng = rand.New(rand.NewSource(seed))

	if o.namesPath == "" {
		o.names = naming.Default()
		return nil
	}
	f, err := os.Open(o.namesPath)
	if err != nil {
		return fmt.Errorf("failed to open names corpus: %w", err)
	}
	defer f.Close()
	if o.names, err = naming.Load(f); err != nil {
		return fmt.Errorf("failed to load names corpus %s: %w", o.namesPath, err)
	}
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
