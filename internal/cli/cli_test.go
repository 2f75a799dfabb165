package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/config"
)

type cliFixture struct {
	app *app.App
	now time.Time
}

func newCLI(t *testing.T) *cliFixture {
	t.Helper()
	f := &cliFixture{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	a, err := app.New(config.Config{
		DatabaseDriver:      config.DriverMemory,
		JWTSecret:           "cli-secret",
		TokenTTL:            time.Hour,
		AcceptExpiredTokens: true,
	}, app.WithClock(func() time.Time { return f.now }), app.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)
	f.app = a
	return f
}

// run executes one thomasctl invocation against the fixture's stores.
func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand(func() (*app.App, error) { return f.app, nil })
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func (f *cliFixture) createAdmin(t *testing.T, email, number, adminType string) {
	t.Helper()
	_, err := f.run(t, "admin", "create",
		"--email", email, "--number", number, "--password", "StrongPass!23",
		"--firstname", "Ama", "--lastname", "Mensah", "--dob", "1990-04-12", "--type", adminType)
	require.NoError(t, err)
}

func TestAdminCreateAndList(t *testing.T) {
	f := newCLI(t)

	out, err := f.run(t, "admin", "create",
		"--email", "root@thomas.test", "--number", "0200000000", "--password", "StrongPass!23",
		"--firstname", "Kojo", "--lastname", "Boateng", "--dob", "1980-01-30")
	require.NoError(t, err)
	require.Equal(t, "created SuperAdmin 1 (root@thomas.test)\n", out)

	f.createAdmin(t, "ama@thomas.test", "0244000001", "Doctor")
	f.createAdmin(t, "esi@thomas.test", "0244000002", "Nurse")

	out, err = f.run(t, "admin", "list")
	require.NoError(t, err)
	goldie.New(t).Assert(t, "admin_list", []byte(out))
}

func TestAdminCreateRejectsDuplicate(t *testing.T) {
	f := newCLI(t)
	f.createAdmin(t, "ama@thomas.test", "0244000001", "Doctor")

	_, err := f.run(t, "admin", "create",
		"--email", "ama@thomas.test", "--number", "0244000009", "--password", "x", "--dob", "1990-04-12")
	require.ErrorContains(t, err, "same email")

	_, err = f.run(t, "admin", "create", "--email", "kofi@thomas.test")
	require.Error(t, err, "required flags are enforced")
}

func TestTokenIssueAndInspect(t *testing.T) {
	f := newCLI(t)
	f.createAdmin(t, "ama@thomas.test", "0244000001", "Doctor")

	out, err := f.run(t, "--format", "json", "token", "issue", "1")
	require.NoError(t, err)
	var issued struct {
		Token     string    `json:"token"`
		SubjectID int64     `json:"subject_id"`
		ExpiresAt time.Time `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &issued))
	require.Equal(t, int64(1), issued.SubjectID)
	require.True(t, issued.ExpiresAt.Equal(f.now.Add(time.Hour)))

	out, err = f.run(t, "token", "inspect", issued.Token)
	require.NoError(t, err)
	goldie.New(t).Assert(t, "token_inspect", []byte(out))

	f.now = f.now.Add(2 * time.Hour)
	out, err = f.run(t, "token", "inspect", issued.Token)
	require.NoError(t, err)
	goldie.New(t).Assert(t, "token_inspect_expired", []byte(out))

	_, err = f.run(t, "token", "issue", "99")
	require.Error(t, err)
	_, err = f.run(t, "token", "inspect", "not-a-token")
	require.Error(t, err)
}

func TestNotificationsClearNeedsConfirmation(t *testing.T) {
	f := newCLI(t)
	_, err := f.app.Notifier.Create(context.Background(), nil, "Ward B restocked")
	require.NoError(t, err)

	out, err := f.run(t, "notifications", "list")
	require.NoError(t, err)
	require.Equal(t, "1  Ward B restocked\n", out)

	_, err = f.run(t, "notifications", "clear")
	require.ErrorIs(t, err, errClearNotConfirmed)

	out, err = f.run(t, "notifications", "clear", "--yes")
	require.NoError(t, err)
	require.Equal(t, "cleared all notifications\n", out)

	out, err = f.run(t, "notifications", "list")
	require.NoError(t, err)
	require.Equal(t, "no notifications\n", out)
}

func TestRejectsUnknownFormat(t *testing.T) {
	f := newCLI(t)
	_, err := f.run(t, "--format", "yaml", "admin", "list")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "invalid format"))
}

func TestTokenInspectHandlesMissingClaims(t *testing.T) {
	f := newCLI(t)
	sign := func(claims jwt.MapClaims) string {
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("cli-secret"))
		require.NoError(t, err)
		return raw
	}

	_, err := f.run(t, "token", "inspect", sign(jwt.MapClaims{"userId": 42}))
	require.Error(t, err, "a token without exp is rejected")

	out, err := f.run(t, "token", "inspect", sign(jwt.MapClaims{"userId": 42, "exp": f.now.Add(time.Hour).Unix()}))
	require.NoError(t, err)
	require.Equal(t, "subject  42\nissued   -\nexpires  2024-06-01T10:00:00Z\nexpired  false\n", out)
}
