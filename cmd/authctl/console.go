package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klwxsrx/go-auth-session/internal/session/app/message"
	"github.com/klwxsrx/go-auth-session/internal/session/app/service"
	"github.com/klwxsrx/go-auth-session/internal/session/domain"
)

const usage = `commands:
  init                             restore the session from the refresh cookie
  login <email> <password>
  logout
  signup <email> <password> [lang]
  refresh
  forgot <email> [lang]
  reset <token> <password>
  verify <token>
  resend <email>
  whoami
  quit`

type (
	sessionController interface {
		Session() domain.Session
		Initialize(ctx context.Context) domain.Session
		Login(ctx context.Context, email, password string) (domain.User, error)
		Logout(ctx context.Context)
		Signup(ctx context.Context, params service.SignupParams) (service.SignupResult, error)
		Refresh(ctx context.Context) error
		ForgotPassword(ctx context.Context, email, language string) error
		ResetPassword(ctx context.Context, token, password string) error
		VerifyEmail(ctx context.Context, token string) error
		ResendEmail(ctx context.Context, email string) error
	}

	console struct {
		controller sessionController
		messages   message.Catalog
		language   string
		in         io.Reader
		out        io.Writer
	}

	command func(ctx context.Context, args []string) (string, error)
)

var errUsage = errors.New("wrong arguments")

func newConsole(
	controller sessionController,
	messages message.Catalog,
	language string,
	in io.Reader,
	out io.Writer,
) *console {
	return &console{
		controller: controller,
		messages:   messages,
		language:   language,
		in:         in,
		out:        out,
	}
}

// Run restores the session and then executes commands line by line until quit, end of input or ctx cancellation.
func (c *console) Run(ctx context.Context) error {
	c.controller.Initialize(ctx)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.prompt()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			return nil
		case line := <-lines:
			if !c.Execute(ctx, line) {
				return nil
			}
			c.prompt()
		}
	}
}

// Execute runs a single command line and reports false when the console should stop.
func (c *console) Execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	name, args := fields[0], fields[1:]
	if name == "quit" || name == "exit" {
		return false
	}

	cmd, ok := c.commands()[name]
	if !ok {
		c.println(usage)
		return true
	}

	result, err := cmd(ctx, args)
	switch {
	case errors.Is(err, errUsage):
		c.println(usage)
	case errors.Is(err, service.ErrInvalidInput):
		c.println("error: " + err.Error())
	case err != nil:
		c.println("error: " + c.messages.ErrorMessage(err, c.language))
	default:
		c.println(result)
	}
	return true
}

func (c *console) commands() map[string]command {
	return map[string]command{
		"help": func(context.Context, []string) (string, error) {
			return usage, nil
		},
		"init": func(ctx context.Context, _ []string) (string, error) {
			return describeSession(c.controller.Initialize(ctx)), nil
		},
		"login": func(ctx context.Context, args []string) (string, error) {
			if len(args) != 2 {
				return "", errUsage
			}
			user, err := c.controller.Login(ctx, args[0], args[1])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("logged in as %s", user.Email), nil
		},
		"logout": func(ctx context.Context, _ []string) (string, error) {
			c.controller.Logout(ctx)
			return "logged out", nil
		},
		"signup": func(ctx context.Context, args []string) (string, error) {
			if len(args) < 2 || len(args) > 3 {
				return "", errUsage
			}
			result, err := c.controller.Signup(ctx, service.SignupParams{
				Email:    args[0],
				Password: args[1],
				Language: c.languageArg(args, 2),
			})
			if err != nil {
				return "", err
			}
			if result.VerificationEmailSent {
				return "signed up, check your inbox for the verification letter", nil
			}
			return "signed up", nil
		},
		"refresh": func(ctx context.Context, _ []string) (string, error) {
			err := c.controller.Refresh(ctx)
			if err != nil {
				return "", err
			}
			return describeSession(c.controller.Session()), nil
		},
		"forgot": func(ctx context.Context, args []string) (string, error) {
			if len(args) < 1 || len(args) > 2 {
				return "", errUsage
			}
			err := c.controller.ForgotPassword(ctx, args[0], c.languageArg(args, 1))
			if err != nil {
				return "", err
			}
			return "password reset letter requested", nil
		},
		"reset": func(ctx context.Context, args []string) (string, error) {
			if len(args) != 2 {
				return "", errUsage
			}
			err := c.controller.ResetPassword(ctx, args[0], args[1])
			if err != nil {
				return "", err
			}
			return "password changed", nil
		},
		"verify": func(ctx context.Context, args []string) (string, error) {
			if len(args) != 1 {
				return "", errUsage
			}
			err := c.controller.VerifyEmail(ctx, args[0])
			if err != nil {
				return "", err
			}
			return "email verified", nil
		},
		"resend": func(ctx context.Context, args []string) (string, error) {
			if len(args) != 1 {
				return "", errUsage
			}
			err := c.controller.ResendEmail(ctx, args[0])
			if err != nil {
				return "", err
			}
			return "verification letter sent again", nil
		},
		"whoami": func(context.Context, []string) (string, error) {
			return describeSession(c.controller.Session()), nil
		},
	}
}

func (c *console) languageArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return c.language
}

func (c *console) prompt() {
	_, _ = fmt.Fprint(c.out, "> ")
}

func (c *console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func describeSession(session domain.Session) string {
	switch session.State() {
	case domain.StateAuthenticated:
		verified := "not verified"
		if session.User.EmailVerified {
			verified = "verified"
		}
		return fmt.Sprintf("authenticated as %s (id %d, email %s)", session.User.Email, session.User.ID, verified)
	case domain.StateAnonymous:
		return "anonymous"
	default:
		return "session is loading"
	}
}
