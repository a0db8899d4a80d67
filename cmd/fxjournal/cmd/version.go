package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the fxjournal CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fxjournal version %s\n", version)
		fmt.Println("A single-user FX trading journal with local persistence")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
