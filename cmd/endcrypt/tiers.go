package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/andresmejia3/endcrypt/pkg/catmap"
	"github.com/andresmejia3/endcrypt/pkg/pixel"
	"github.com/spf13/cobra"
)

var (
	tiersFlags struct {
		Size   int
		Height int
		Width  int
	}
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Check which cat-map tiers are usable for an image shape",
	Long:  `For every coefficient tier, reports whether the forward map is a permutation of an H x W grid and whether the tabulated inverse coefficients undo it. Encryption fails on shapes where the map is not a permutation.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, w := tiersFlags.Size, tiersFlags.Size
		if cmd.Flags().Changed("height") || cmd.Flags().Changed("width") {
			h, w = tiersFlags.Height, tiersFlags.Width
		}
		if h <= 0 || w <= 0 {
			return errors.New("height and width must be positive")
		}

		fmt.Printf("Grid %dx%d\n\n", h, w)
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIER\tFORWARD\tBIJECTIVE\tINVERSE MATCHES")
		for _, c := range catmap.Verify(h, w) {
			fmt.Fprintf(tw, "%s\t%v\t%s\t%s\n", c.Tier, c.Tier.Forward, yesNo(c.Bijective), yesNo(c.InverseMatches))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)

	tiersCmd.Flags().IntVar(&tiersFlags.Size, "size", pixel.CanvasSize, "Square grid size")
	tiersCmd.Flags().IntVar(&tiersFlags.Height, "height", 0, "Grid height (with --width, overrides --size)")
	tiersCmd.Flags().IntVar(&tiersFlags.Width, "width", 0, "Grid width (with --height, overrides --size)")
}
