// Package cli implements thomasctl, the operator tool for staff accounts,
// session tokens and the notification feed.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
)

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags and the way commands reach the stores.
type RootOptions struct {
	Format string
	Open   func() (*app.App, error)
}

func NewRootCommand(open func() (*app.App, error)) *cobra.Command {
	opts := &RootOptions{Open: open}

	cmd := &cobra.Command{
		Use:           "thomasctl",
		Short:         "Operate the Thomas Hospital staff backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(newTokenCommand(opts))
	cmd.AddCommand(newAdminCommand(opts))
	cmd.AddCommand(newNotificationsCommand(opts))
	return cmd
}

func (o *RootOptions) withApp(fn func(a *app.App) error) error {
	a, err := o.Open()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// emit writes data as indented JSON, or calls text for the human format.
func (o *RootOptions) emit(w io.Writer, data any, text func(io.Writer)) error {
	if o.Format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	}
	text(w)
	return nil
}
