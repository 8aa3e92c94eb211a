package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"coolschool/internal/auth"
	"coolschool/internal/config"
	"coolschool/internal/page"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	authService *auth.Service
	pageRepo    *page.Repository
	site        config.Site
	out         io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  createsuperuser -username USERNAME - create a superuser, the password is prompted")
	fmt.Fprintln(cli.out, "  adduser -username USERNAME - create a user without content rights")
	fmt.Fprintln(cli.out, "  resetpassword -username USERNAME - reset user's password")
	fmt.Fprintln(cli.out, "  seed - create the site pages")
}

// run executes an admin command. args[0] is "admin".
func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "createsuperuser":
		username, pwd, err := cli.credentials(args[1], args[2:])
		if err != nil {
			return err
		}
		if _, err := cli.authService.Repo.FindUserByUsername(ctx, username); err == nil {
			fmt.Fprintf(cli.out, "user %q already exists, promoting and resetting the password\n", username)
		}
		user, err := cli.authService.SaveUser(ctx, username, pwd, true)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "user %q saved (superuser: %t)\n", user.Username, user.IsSuperuser)
		return nil
	case "adduser":
		username, pwd, err := cli.credentials(args[1], args[2:])
		if err != nil {
			return err
		}
		user, err := cli.authService.CreateUser(ctx, username, pwd, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "user %q saved (superuser: %t)\n", user.Username, user.IsSuperuser)
		return nil
	case "resetpassword":
		username, pwd, err := cli.credentials(args[1], args[2:])
		if err != nil {
			return err
		}
		if err := cli.authService.ResetPassword(ctx, username, pwd); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "password of %q changed\n", username)
		return nil
	case "seed":
		if err := cli.pageRepo.Seed(ctx, cli.site); err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%d pages seeded\n", len(cli.site.Pages))
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}

// credentials parses -username and prompts for the password without echo.
func (cli *commandLine) credentials(name string, args []string) (string, string, error) {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	username := cmd.String("username", "", "The user's username. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return "", "", errHelp
	}
	if *username == "" {
		cmd.Usage()
		return "", "", errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", "", err
	}
	if len(pwd) == 0 {
		cmd.Usage()
		return "", "", errHelp
	}
	return *username, string(pwd), nil
}
