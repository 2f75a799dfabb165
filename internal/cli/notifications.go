package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
)

var errClearNotConfirmed = errors.New("refusing to clear notifications without --yes")

func newNotificationsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Inspect and clear the notification feed",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the notification feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				items, err := a.Notifier.List(cmd.Context())
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), items, func(w io.Writer) {
					if len(items) == 0 {
						fmt.Fprintln(w, "no notifications")
						return
					}
					for _, n := range items {
						fmt.Fprintf(w, "%d  %s\n", n.ID, n.Message)
					}
				})
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every notification",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errClearNotConfirmed
			}
			return opts.withApp(func(a *app.App) error {
				if err := a.Notifier.ClearAll(cmd.Context()); err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), map[string]bool{"cleared": true}, func(w io.Writer) {
					fmt.Fprintln(w, "cleared all notifications")
				})
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm removal")
	cmd.AddCommand(clearCmd)
	return cmd
}
