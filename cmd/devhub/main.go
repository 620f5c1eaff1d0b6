// Command devhub drives the DevHub backend from a terminal. The session is
// kept in a local file so it survives between invocations.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devhub/internal/api"
	"devhub/internal/config"
	"devhub/internal/logger"
	"devhub/internal/session"

	"github.com/rs/zerolog"
)

const usage = `usage: devhub <command> [flags]

commands:
  login       sign in and store the session
  logout      drop the stored session
  whoami      show the signed in user
  signup      create an account with the three step wizard
  developers  browse developers (-search -skill -location -rating -limit)
  dashboard   show your dashboard (-watch keeps refreshing)
`

type app struct {
	api    *api.API
	logger zerolog.Logger
	in     *prompter
	out    io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	log := logger.InitLogger(cfg.LogLevel)

	sess := session.New(session.NewFileStorage(cfg.SessionFile))
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, sess, log)

	a := &app{
		api:    api.New(client),
		logger: log,
		in:     newPrompter(os.Stdin, os.Stdout),
		out:    os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "error:", apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "signup":
		return a.signup(ctx)
	case "developers":
		return a.developers(ctx, args)
	case "dashboard":
		return a.dashboard(ctx, args)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}
