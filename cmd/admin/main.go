package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/oguzk/labsessions/internal/bootstrap"
	"github.com/oguzk/labsessions/internal/db"
	"github.com/oguzk/labsessions/internal/pkg/auth"
	"github.com/oguzk/labsessions/internal/pkg/helpers"
)

// Maintenance commands for operators. Run from the repository root so the
// config and migrations paths resolve.
//
//	admin deleteregs -session 7 -exclude jane@school.edu,joe@school.edu
//	admin listregs -session 7
//	admin token -email jane@school.edu -name "Jane Doe" -role staff
func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "deleteregs":
		runDeleteRegs(os.Args[2:])
	case "listregs":
		runListRegs(os.Args[2:])
	case "token":
		runToken(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: admin <command> [flags]

commands:
  deleteregs  bulk-delete registrations of a session
  listregs    list registrations of a session
  token       mint a development JWT`)
}

func setup() (*bootstrap.Dependencies, func()) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to connect to database")
	}

	deps, err := bootstrap.BuildDependencies(cfg, database.Pool, lgr)
	if err != nil {
		database.Close()
		lgr.Fatal().Err(err).Msg("Failed to build dependencies")
	}

	return deps, database.Close
}

// splitList turns a comma-separated flag value into trimmed entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func runDeleteRegs(args []string) {
	fs := flag.NewFlagSet("deleteregs", flag.ExitOnError)
	sessionID := fs.Int64("session", 0, "session ID (required)")
	only := fs.String("only", "", "comma-separated emails to delete; empty means all")
	exclude := fs.String("exclude", "", "comma-separated emails to keep")
	_ = fs.Parse(args)

	if *sessionID == 0 {
		fmt.Fprintln(os.Stderr, "deleteregs: -session is required")
		fs.Usage()
		os.Exit(2)
	}
	if *only != "" && *exclude != "" {
		fmt.Fprintln(os.Stderr, "deleteregs: -only and -exclude are mutually exclusive")
		os.Exit(2)
	}

	deps, closeDB := setup()
	defer closeDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := deps.Repos.RegistrationRepository.DeleteBySession(ctx, *sessionID, splitList(*only), splitList(*exclude))
	if err != nil {
		deps.Logger.Fatal().Err(err).Int64("sessionId", *sessionID).Msg("Failed to delete registrations")
	}

	for _, email := range deleted {
		fmt.Println(email)
	}
	deps.Logger.Info().Int64("sessionId", *sessionID).Int("deleted", len(deleted)).Msg("Registrations deleted")
}

func runListRegs(args []string) {
	fs := flag.NewFlagSet("listregs", flag.ExitOnError)
	sessionID := fs.Int64("session", 0, "session ID (required)")
	_ = fs.Parse(args)

	if *sessionID == 0 {
		fmt.Fprintln(os.Stderr, "listregs: -session is required")
		fs.Usage()
		os.Exit(2)
	}

	deps, closeDB := setup()
	defer closeDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	registrations, err := deps.Repos.RegistrationRepository.ListBySession(ctx, *sessionID)
	if err != nil {
		deps.Logger.Fatal().Err(err).Int64("sessionId", *sessionID).Msg("Failed to list registrations")
	}

	for _, reg := range registrations {
		fmt.Printf("%s\t%s\t%s\t%s\n", reg.StudentEmail, reg.StudentName, reg.Reference, reg.CreatedAt.Format(time.RFC3339))
	}
}

func runToken(args []string) {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	email := fs.String("email", "", "subject email (required)")
	name := fs.String("name", "", "display name")
	role := fs.String("role", auth.RoleStudent, "role: student or staff")
	_ = fs.Parse(args)

	if *email == "" {
		fmt.Fprintln(os.Stderr, "token: -email is required")
		fs.Usage()
		os.Exit(2)
	}
	if *role != auth.RoleStudent && *role != auth.RoleStaff {
		fmt.Fprintf(os.Stderr, "token: invalid role %q\n", *role)
		os.Exit(2)
	}

	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.TokenExpiration, 24*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	token, err := jwtService.GenerateToken(*email, *name, *role)
	if err != nil {
		lgr.Fatal().Err(err).Msg("Failed to mint token")
	}
	fmt.Println(token)
}
