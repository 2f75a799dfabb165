package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/domain"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/service"
)

func newAdminCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage staff accounts",
	}
	cmd.AddCommand(newAdminCreateCommand(opts))
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List staff grouped by admin type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				grouped, err := a.Admins.ListByAdminType(cmd.Context())
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), grouped, func(w io.Writer) {
					for _, adminType := range domain.AdminTypes {
						users := grouped[adminType]
						if len(users) == 0 {
							fmt.Fprintf(w, "%s: none\n", adminType)
							continue
						}
						fmt.Fprintf(w, "%s:\n", adminType)
						for _, u := range users {
							fmt.Fprintf(w, "  %d  %s %s  %s  %s\n", u.ID, u.FirstName, u.LastName, u.Email, u.Number)
						}
					}
				})
			})
		},
	})
	return cmd
}

// newAdminCreateCommand adds a staff member without going through the API,
// which is how the first SuperAdmin is created.
func newAdminCreateCommand(opts *RootOptions) *cobra.Command {
	var in service.RegisterAdminInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.ConfirmPassword = in.Password
			return opts.withApp(func(a *app.App) error {
				user, err := a.Admins.Register(cmd.Context(), in)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), user, func(w io.Writer) {
					fmt.Fprintf(w, "created %s %d (%s)\n", user.AdminType, user.ID, user.Email)
				})
			})
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&in.Email, "email", "", "email address")
	flags.StringVar(&in.Number, "number", "", "phone number")
	flags.StringVar(&in.Password, "password", "", "initial password")
	flags.StringVar(&in.FirstName, "firstname", "", "first name")
	flags.StringVar(&in.LastName, "lastname", "", "last name")
	flags.StringVar(&in.DOB, "dob", "", "date of birth (YYYY-MM-DD)")
	flags.StringVar(&in.AdminType, "type", domain.AdminTypeSuperAdmin, "admin type")
	flags.StringVar(&in.Department, "department", "", "department")
	for _, required := range []string{"email", "number", "password", "dob"} {
		_ = cmd.MarkFlagRequired(required)
	}
	return cmd
}
