// Command listend serves listener sessions over WebSocket.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌─┐┌┬┐┌─┐┌┐┌┌┬┐
  │  │└─┐ │ ├┤ │││ ││
  ┴─┘┴└─┘ ┴ └─┘┘└┘─┴┘
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "listend",
		Short: "Event listener bridge daemon",
		Long: `listend serves event listener sessions over WebSocket.

Each connected host gets its own bridge: the server attaches
listeners to host nodes, receives their events, and detaches
them again when they are discarded.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the listend ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}
