package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"coolschool/internal/auth"
	"coolschool/internal/config"
	"coolschool/internal/page"
	"coolschool/internal/testutil"
)

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	t.Helper()

	db := testutil.PrepareDB(t)
	store, err := auth.NewCookieStore(strings.Repeat("k", 32))
	require.NoError(t, err)

	svc := auth.NewService(auth.NewRepository(db), store)
	svc.BcryptCost = bcrypt.MinCost

	var out bytes.Buffer
	return &commandLine{
		authService: svc,
		pageRepo:    page.NewRepository(db),
		site:        config.DefaultSite(),
		out:         &out,
	}, &out
}

func mockPassword(t *testing.T, pwd string) {
	t.Helper()
	prev := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte(pwd), nil }
	t.Cleanup(func() { readPasswordFunc = prev })
}

func Test_commandLine_usage(t *testing.T) {
	cli, _ := setup(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: nil},
		{name: "unknown command", args: []string{"lol"}},
		{name: "no username", args: []string{"createsuperuser"}},
		{name: "unknown flag", args: []string{"adduser", "-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPassword(t, "pw")
			err := cli.run(append([]string{"admin"}, tt.args...))
			assert.ErrorIs(t, err, errHelp)
		})
	}

	t.Run("empty password", func(t *testing.T) {
		mockPassword(t, "")
		err := cli.run([]string{"admin", "createsuperuser", "-username", "admin"})
		assert.ErrorIs(t, err, errHelp)
	})
}

func Test_commandLine_createsuperuser(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	mockPassword(t, "secret")
	require.NoError(t, cli.run([]string{"admin", "createsuperuser", "-username", "admin"}))
	assert.Contains(t, out.String(), `user "admin" saved (superuser: true)`)

	user, err := cli.authService.Authenticate(ctx, "admin", "secret")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)

	require.NoError(t, cli.run([]string{"admin", "adduser", "-username", "editor"}))
	user, err = cli.authService.Authenticate(ctx, "editor", "secret")
	require.NoError(t, err)
	assert.False(t, user.IsSuperuser)
}

func Test_commandLine_adduserExisting(t *testing.T) {
	cli, out := setup(t)
	ctx := context.Background()

	mockPassword(t, "first")
	require.NoError(t, cli.run([]string{"admin", "adduser", "-username", "editor"}))

	mockPassword(t, "second")
	err := cli.run([]string{"admin", "adduser", "-username", "editor"})
	assert.ErrorIs(t, err, auth.ErrUserExists)

	_, err = cli.authService.Authenticate(ctx, "editor", "first")
	assert.NoError(t, err, "adduser must not reset an existing password")

	require.NoError(t, cli.run([]string{"admin", "createsuperuser", "-username", "editor"}))
	assert.Contains(t, out.String(), `user "editor" already exists`)
	user, err := cli.authService.Authenticate(ctx, "editor", "second")
	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
}

func Test_commandLine_resetpassword(t *testing.T) {
	cli, _ := setup(t)
	ctx := context.Background()

	mockPassword(t, "old")
	require.NoError(t, cli.run([]string{"admin", "adduser", "-username", "editor"}))

	mockPassword(t, "new")
	require.NoError(t, cli.run([]string{"admin", "resetpassword", "-username", "editor"}))
	_, err := cli.authService.Authenticate(ctx, "editor", "new")
	assert.NoError(t, err)

	err = cli.run([]string{"admin", "resetpassword", "-username", "ghost"})
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func Test_commandLine_seed(t *testing.T) {
	cli, out := setup(t)

	require.NoError(t, cli.run([]string{"admin", "seed"}))
	require.NoError(t, cli.run([]string{"admin", "seed"}))
	assert.Contains(t, out.String(), "6 pages seeded")

	pages, err := cli.pageRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, pages, 6)
}
