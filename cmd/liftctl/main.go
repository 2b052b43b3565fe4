package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/liftboard/internal/client"
	"github.com/2beens/liftboard/internal/lifts"
)

const version = "0.1.0"

const usage = `usage: liftctl [-addr URL] [-token TOKEN] <command> [args]

commands:
  signup <username> <password>
  login <username> <password>
  logout
  me
  user <username>
  profile [-user NAME] [-sort weight|reps|one_rep_max|created_at] [-unit kg|lbs]
  add <type> <reps> <weight> <kg|lbs>
  update <id> <type> <reps> <weight> <kg|lbs>
  delete <id>
  lifts
  leaderboard [kg|lbs]
  calc <weight> <reps> [formula]

the token printed by signup/login is read from -token or LIFTBOARD_TOKEN`

func main() {
	addr := flag.String("addr", envOr("LIFTBOARD_ADDR", client.DefaultBaseURL), "liftboard API base url")
	token := flag.String("token", os.Getenv("LIFTBOARD_TOKEN"), "session token")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	c, err := client.New(*addr, version)
	if err != nil {
		log.Fatalf("new client: %s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session := &client.Session{Token: *token}
	if err := run(ctx, c, session, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			log.Errorf("%s (status %d)", apiErr.Message, apiErr.StatusCode)
		} else {
			log.Errorf("%s: %s", flag.Arg(0), err)
		}
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, session *client.Session, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "signup", "login":
		if len(args) != 2 {
			return errors.New("expected <username> <password>")
		}
		authenticate := c.Login
		if cmd == "signup" {
			authenticate = c.SignUp
		}
		newSession, err := authenticate(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(out, newSession)
	case "logout":
		if err := c.Logout(ctx, session); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out, "logged out")
		return err
	case "me":
		return printResult(c.CurrentUser(ctx, session))(out)
	case "user":
		if len(args) != 1 {
			return errors.New("expected <username>")
		}
		return printResult(c.UserByName(ctx, args[0]))(out)
	case "profile":
		fs := flag.NewFlagSet("profile", flag.ContinueOnError)
		username := fs.String("user", "", "username, defaults to the session owner")
		sortBy := fs.String("sort", "", "sort key")
		unit := fs.String("unit", "", "kg or lbs")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return printResult(c.Profile(ctx, session, *username, *sortBy, *unit))(out)
	case "add":
		input, err := parseLiftInput(args)
		if err != nil {
			return err
		}
		return printResult(c.CreateLift(ctx, session, input))(out)
	case "update":
		if len(args) != 5 {
			return errors.New("expected <id> <type> <reps> <weight> <kg|lbs>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid lift id: %w", err)
		}
		input, err := parseLiftInput(args[1:])
		if err != nil {
			return err
		}
		return printResult(c.UpdateLift(ctx, session, id, input))(out)
	case "delete":
		if len(args) != 1 {
			return errors.New("expected <id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid lift id: %w", err)
		}
		return printResult(c.DeleteLift(ctx, session, id))(out)
	case "lifts":
		return printResult(c.ListLifts(ctx, session))(out)
	case "leaderboard":
		weightType := ""
		if len(args) > 0 {
			weightType = args[0]
		}
		return printResult(c.Leaderboard(ctx, weightType))(out)
	case "calc":
		if len(args) < 2 || len(args) > 3 {
			return errors.New("expected <weight> <reps> [formula]")
		}
		var weight float64
		var reps int
		if _, err := fmt.Sscan(args[0], &weight); err != nil {
			return fmt.Errorf("invalid weight: %w", err)
		}
		if _, err := fmt.Sscan(args[1], &reps); err != nil {
			return fmt.Errorf("invalid reps: %w", err)
		}
		f := ""
		if len(args) == 3 {
			f = args[2]
		}
		return printResult(c.Calculate(ctx, weight, reps, f))(out)
	default:
		return fmt.Errorf("unknown command: %q", cmd)
	}
}

// parseLiftInput reads <type> <reps> <weight> <unit>. Validation is left to the server.
func parseLiftInput(args []string) (lifts.LiftInput, error) {
	if len(args) != 4 {
		return lifts.LiftInput{}, errors.New("expected <type> <reps> <weight> <kg|lbs>")
	}
	input := lifts.LiftInput{Type: args[0], WeightType: args[3]}
	if _, err := fmt.Sscan(args[1], &input.Reps); err != nil {
		return lifts.LiftInput{}, fmt.Errorf("invalid reps: %w", err)
	}
	if _, err := fmt.Sscan(args[2], &input.Weight); err != nil {
		return lifts.LiftInput{}, fmt.Errorf("invalid weight: %w", err)
	}
	return input, nil
}

func printResult[T any](v T, err error) func(io.Writer) error {
	return func(out io.Writer) error {
		if err != nil {
			return err
		}
		return printJSON(out, v)
	}
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
