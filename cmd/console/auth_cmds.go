package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/propdesk/propdesk/gate"
	"github.com/propdesk/propdesk/session"
	"github.com/propdesk/propdesk/token"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for a session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read username: %w", err)
				}
				username = strings.TrimSpace(line)
			}
			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			claims, err := a.client.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", claims.Username, claims.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			access, ok := a.store.Get(session.KeyAccessToken)
			if !ok || access == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			claims, err := token.Decode(access)
			if err != nil {
				// Same policy as the route gate: a corrupt token means
				// logged out, never an error dump.
				_ = a.store.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\n", claims.Username)
			fmt.Fprintf(cmd.OutOrStdout(), "Role:     %s\n", claims.Role)
			if !claims.ExpiresAt.IsZero() {
				fmt.Fprintf(cmd.OutOrStdout(), "Expires:  %s\n", claims.ExpiresAt.Format(time.RFC3339))
			}
			return nil
		},
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <route>",
		Short: "Evaluate the route gate for a navigation target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			outcome := a.gate.Evaluate(args[0])
			switch outcome.Decision {
			case gate.Render:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: render\n", args[0])
			case gate.RedirectLogin:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: redirect to /login\n", args[0])
			case gate.RedirectUnauthorized:
				fmt.Fprintf(cmd.OutOrStdout(), "%s: redirect to /unauthorized (role %s)\n", args[0], outcome.Role)
			}
			return nil
		},
	}
}
