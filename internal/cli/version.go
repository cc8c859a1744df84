package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display version information for auctiond including build details and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("auctiond version %s\n", Version)
		fmt.Printf("Git commit hash: %s\n", Commit)
		fmt.Printf("Go version: %s\n", runtime.Version())
		fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
