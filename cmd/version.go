package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/matai-dev/matai/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the matai version",
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Matai", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Printf("matai %s\n", Version)
	},
}
