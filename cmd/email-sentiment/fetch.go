package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mikey/email-sentiment/internal/core"
	"github.com/spf13/cobra"
)

var (
	fetchProvider      string
	fetchUser          string
	fetchPassword      string
	fetchPasswordStdin bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch the whole inbox and replace the cache",
	Long: `Fetch every message of the inbox over IMAP and replace the cached snapshot.
The password is never stored. Pass it with --password-stdin or EMAIL_SENTIMENT_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if fetchUser == "" {
			return fmt.Errorf("--user is required")
		}

		secret, err := readSecret(cmd)
		if err != nil {
			return err
		}

		imapCfg, err := app.cfg.GetIMAP()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), imapCfg.Timeout)
		defer cancel()

		if err := app.service.Fetch(ctx, app.state, fetchProvider, fetchUser, secret); err != nil {
			return err
		}

		app.expired = false
		app.neverFetched = false
		return app.presenter.Fetched(strings.ToLower(fetchProvider), app.status())
	},
}

// readSecret takes the password from the flag, stdin or the environment, in that order
func readSecret(cmd *cobra.Command) (string, error) {
	if fetchPassword != "" {
		return fetchPassword, nil
	}
	if fetchPasswordStdin {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	if secret := os.Getenv("EMAIL_SENTIMENT_PASSWORD"); secret != "" {
		return secret, nil
	}
	return "", fmt.Errorf("no password given: use --password-stdin or EMAIL_SENTIMENT_PASSWORD")
}

// describeError turns typed errors into a message for the user
func describeError(err error) string {
	var fetchErr *core.FetchError
	if errors.As(err, &fetchErr) {
		switch fetchErr.Kind {
		case core.AuthError:
			return fmt.Sprintf("login rejected, check the user and app password (%v)", fetchErr.Err)
		case core.ConnectionError:
			return fmt.Sprintf("could not reach the mail server (%v)", fetchErr.Err)
		default:
			return fmt.Sprintf("mail server error during %s (%v)", fetchErr.Op, fetchErr.Err)
		}
	}
	if errors.Is(err, core.ErrUnknownProvider) {
		return fmt.Sprintf("%v (choose one of %s)", err, strings.Join(core.Providers(), ", "))
	}
	return err.Error()
}

func init() {
	fetchCmd.Flags().StringVar(&fetchProvider, "provider", "gmail", "Mail provider ("+strings.Join(core.Providers(), ", ")+")")
	fetchCmd.Flags().StringVar(&fetchUser, "user", "", "Mailbox user name, usually the email address")
	fetchCmd.Flags().StringVar(&fetchPassword, "password", "", "Mailbox password (visible in the process list; prefer --password-stdin)")
	fetchCmd.Flags().BoolVar(&fetchPasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")
}
