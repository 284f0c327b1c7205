// Command wattsonctl is the console and CLI for the WattsOn settlement
// backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rshade/wattsonctl/internal/cli"
	"github.com/rshade/wattsonctl/pkg/version"
)

func main() {
	os.Exit(run())
}

// run executes the root command and returns the process exit code. Errors
// whose message the command already printed are not printed again.
func run() int {
	root := cli.NewRootCmd(version.GetVersion())
	err := root.ExecuteContext(context.Background())
	if err != nil && !cli.IsReported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return extractExitCode(err)
}

// extractExitCode maps err to the exit code main returns.
func extractExitCode(err error) int {
	return cli.ExitCode(err)
}
