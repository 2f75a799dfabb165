package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
)

type tokenInfo struct {
	SubjectID int64     `json:"subject_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Expired   bool      `json:"expired"`
}

func newTokenCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and inspect session tokens",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "issue <user-id>",
		Short: "Issue a token for an existing staff member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			return opts.withApp(func(a *app.App) error {
				session, err := a.Sessions.Refresh(cmd.Context(), id, a.Admins.Exists)
				if err != nil {
					return err
				}
				return opts.emit(cmd.OutOrStdout(), session, func(w io.Writer) {
					fmt.Fprintf(w, "token    %s\n", session.Token)
					fmt.Fprintf(w, "expires  %s\n", session.ExpiresAt.UTC().Format(time.RFC3339))
				})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token and show its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				v, err := a.Sessions.Verify("Bearer " + args[0])
				if err != nil {
					return err
				}
				info := tokenInfo{
					SubjectID: v.SubjectID,
					IssuedAt:  claimTime(v.Claims.IssuedAt),
					ExpiresAt: claimTime(v.Claims.ExpiresAt),
					Expired:   v.Expired,
				}
				return opts.emit(cmd.OutOrStdout(), info, func(w io.Writer) {
					fmt.Fprintf(w, "subject  %d\n", info.SubjectID)
					fmt.Fprintf(w, "issued   %s\n", formatClaimTime(info.IssuedAt))
					fmt.Fprintf(w, "expires  %s\n", formatClaimTime(info.ExpiresAt))
					fmt.Fprintf(w, "expired  %t\n", info.Expired)
				})
			})
		},
	})
	return cmd
}

// claimTime is the zero time when the token omits the claim.
func claimTime(d *jwt.NumericDate) time.Time {
	if d == nil {
		return time.Time{}
	}
	return d.Time.UTC()
}

func formatClaimTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
