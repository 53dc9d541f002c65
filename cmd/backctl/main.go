// backctl is the admin command-line client for the back-office API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	clientapi "github.com/seamline/backoffice/internal/client/api"
	"github.com/seamline/backoffice/internal/client/session"
	"github.com/seamline/backoffice/pkg/api"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	sessionPath := flag.String("session", defaultSessionPath(), "Path to the local session file")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := session.Open(*sessionPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close()
	}()

	client := clientapi.NewClient(*serverURL)

	if err := runCommand(ctx, client, store, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runCommand(ctx context.Context, client *clientapi.Client, store *session.Store, args []string) error {
	switch args[0] {
	case "login":
		return cmdLogin(ctx, client, store, args[1:])
	case "logout":
		return cmdLogout(ctx, client, store)
	case "whoami":
		return cmdWhoami(ctx, client, store)
	case "users":
		return cmdUsers(ctx, client, store, args[1:])
	case "verify":
		return cmdVerify(ctx, client, args[1:])
	case "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func cmdLogin(ctx context.Context, client *clientapi.Client, store *session.Store, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: backctl login <email>")
	}
	email := args[0]

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	data, err := client.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	err = store.Save(&session.Session{
		Email:        data.User.Email,
		UserID:       data.User.ID,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		SavedAt:      time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s\n", data.User.Email)
	return nil
}

func cmdLogout(ctx context.Context, client *clientapi.Client, store *session.Store) error {
	sess, err := store.Get()
	if err != nil {
		return err
	}

	// The local session goes away regardless; a second logout on the
	// server side reports the token as already revoked.
	if err := client.Logout(ctx, sess.RefreshToken); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	if err := store.Delete(); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}

func cmdWhoami(ctx context.Context, client *clientapi.Client, store *session.Store) error {
	user, err := authed(ctx, client, store, func() (*api.UserData, error) {
		return client.UserInfo(ctx)
	})
	if err != nil {
		return err
	}

	fmt.Printf("ID:      %s\n", user.ID)
	fmt.Printf("Email:   %s\n", user.Email)
	fmt.Printf("Name:    %s\n", user.FullName)
	fmt.Printf("Status:  %s\n", user.Status)
	fmt.Printf("Admin:   %t\n", user.IsAdmin)
	return nil
}

func cmdUsers(ctx context.Context, client *clientapi.Client, store *session.Store, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (pending, active, deleted)")
	search := fs.String("search", "", "search term")
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "page size (-1 for all)")
	_ = fs.Parse(args)

	req := api.ListRequest{}
	req.Filter.Status = *status
	req.Search.Term = *search
	req.Paginator.Page = *page
	req.Paginator.PageSize = *pageSize

	type result struct {
		users []api.UserData
		total int
	}
	res, err := authed(ctx, client, store, func() (*result, error) {
		users, total, err := client.FindUsers(ctx, req)
		if err != nil {
			return nil, err
		}
		return &result{users: users, total: total}, nil
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tSTATUS\tADMIN")
	for _, u := range res.users {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", u.ID, u.Email, u.FullName, u.Status, u.IsAdmin)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d of %d users\n", len(res.users), res.total)
	return nil
}

func cmdVerify(ctx context.Context, client *clientapi.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: backctl verify <email>")
	}
	email := args[0]

	fmt.Print("Verification code: ")
	var code string
	if _, err := fmt.Scanln(&code); err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	user, err := client.VerifyOTP(ctx, email, code)
	if err != nil {
		return err
	}

	fmt.Printf("User %s is now %s\n", user.Email, user.Status)
	return nil
}

// authed runs call with the cached access token, refreshing it once on
// a 401 before giving up.
func authed[T any](ctx context.Context, client *clientapi.Client, store *session.Store, call func() (*T, error)) (*T, error) {
	sess, err := store.Get()
	if err != nil {
		return nil, err
	}
	client.SetAccessToken(sess.AccessToken)

	res, err := call()
	if err == nil || !clientapi.IsUnauthorized(err) {
		return res, err
	}

	accessToken, refreshErr := client.Refresh(ctx, sess.RefreshToken)
	if refreshErr != nil {
		return nil, fmt.Errorf("session expired, run login again: %w", refreshErr)
	}

	sess.AccessToken = accessToken
	if err := store.Save(sess); err != nil {
		return nil, err
	}
	client.SetAccessToken(accessToken)

	return call()
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "backctl-session.db"
	}
	return home + "/.backctl.db"
}

func printUsage() {
	fmt.Println(`backctl - back-office admin client

Usage:
  backctl [flags] <command>

Commands:
  login <email>    Log in and cache the session locally
  logout           Revoke the refresh token and clear the session
  whoami           Show the authenticated user
  users            List users (admin only)
  verify <email>   Submit an account verification code
  help             Show this message

Flags:
  -server   Server URL (default http://localhost:8080)
  -session  Path to the local session file
  -version  Show version information`)
}

func printVersion() {
	fmt.Printf("backctl\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
