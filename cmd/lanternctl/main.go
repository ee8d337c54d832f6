// lanternctl is a small command line client for the Lantern API. It keeps a
// remembered session in a local SQLite database, so login survives between
// invocations.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lanternware/lantern-go/pkg/sessionsdk"
	"github.com/lanternware/lantern-go/pkg/slogx"
	"github.com/lanternware/lantern-go/pkg/tokenstore/sqlite"
)

func main() {
	apiURL := flag.String("api", envOr("LANTERN_API", "http://localhost:8080"), "Lantern API base URL")
	dbPath := flag.String("db", envOr("LANTERN_DB", "lantern.db"), "path to the credential database")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	logger := slogx.New(slogx.Config{
		Service: "lanternctl",
		Env:     "dev",
		Level:   *logLevel,
		Format:  "text",
	})

	store, err := sqlite.NewStore(*dbPath)
	if err != nil {
		fatalf("failed to open credential store: %v", err)
	}
	defer store.Close()

	client := sessionsdk.New(*apiURL,
		sessionsdk.WithStore(store),
		sessionsdk.WithLogger(logger),
		sessionsdk.WithAuthFailureHook(func() {
			fmt.Fprintln(os.Stderr, "session expired, run 'lanternctl login' again")
		}),
	)

	ctx := context.Background()

	switch cmd := flag.Arg(0); cmd {
	case "login":
		if flag.NArg() != 3 {
			fatalf("usage: lanternctl login <identifier> <password>")
		}
		runLogin(ctx, client, flag.Arg(1), flag.Arg(2))
	case "whoami":
		runWhoami(ctx, client)
	case "logout":
		if err := client.ResumeSession().Logout(ctx); err != nil {
			fatalf("logout failed: %v", err)
		}
		fmt.Println("logged out")
	default:
		fatalf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, client *sessionsdk.Client, identifier, password string) {
	session, err := client.Login(ctx, identifier, password, true)

	var mfaErr *sessionsdk.MFARequiredError
	if errors.As(err, &mfaErr) {
		fmt.Printf("MFA required (%s), enter code: ", strings.Join(mfaErr.Methods, ", "))
		code, readErr := bufio.NewReader(os.Stdin).ReadString('\n')
		if readErr != nil {
			fatalf("failed to read code: %v", readErr)
		}
		session, err = client.LoginMFA(ctx, mfaErr, "totp", strings.TrimSpace(code), true)
	}
	if err != nil {
		fatalf("login failed: %v", err)
	}

	if claims, ok := session.CurrentClaims(); ok {
		fmt.Printf("logged in as %s\n", claims.Username)
	}
}

func runWhoami(ctx context.Context, client *sessionsdk.Client) {
	session := client.ResumeSession()
	if !session.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}

	user, err := session.GetCurrentUser(ctx)
	if err != nil {
		fatalf("failed to fetch profile: %v", err)
	}

	fmt.Printf("%s <%s> role=%s verified=%t\n", user.Username, user.Email, user.Role, user.EmailVerified)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: lanternctl [flags] <login|whoami|logout> [args]")
	flag.PrintDefaults()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
