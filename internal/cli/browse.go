package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/wattsonctl/internal/tui"
)

// ErrNotInteractive is returned when the console is requested without a
// terminal.
var ErrNotInteractive = errors.New("the console needs an interactive terminal; " +
	"use a collection command with --output instead")

func newBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [path]",
		Short: "Open the console at a path",
		Long: `Opens the interactive console at a path:

  /                          the menu
  /<collection>              a list page
  /<collection>/<id>         the detail view of one entity

Collections are settlements, metering-points, customers and supplies.`,
		Example: `  wattsonctl browse /settlements
  wattsonctl browse /customers/3f0c6a3e-5a52-4c2b-9d0e-0d7a8c1b2e44`,
		Args: cobra.MaximumNArgs(1),
		RunE: runBrowse,
	}
}

// runBrowse opens the console. The root command runs it too; without a
// terminal the root prints its help instead.
func runBrowse(cmd *cobra.Command, args []string) error {
	path := "/"
	if len(args) > 0 {
		path = args[0]
	}
	route, err := tui.ParseRoute(path)
	if err != nil {
		return err
	}

	if !interactive(cmd) {
		if !cmd.HasParent() {
			return cmd.Help()
		}
		return ErrNotInteractive
	}

	sess := sessionFrom(cmd)
	client, err := sess.newClient()
	if err != nil {
		return err
	}
	return tui.Run(cmd.Context(), sess.deps(client, tui.Presets{}), route)
}
