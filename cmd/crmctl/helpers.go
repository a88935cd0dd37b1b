package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"crmctl/internal/api"
	"crmctl/internal/screens"
	"crmctl/internal/session"
)

// errNotLoggedIn is the CLI's redirect-to-login.
var errNotLoggedIn = errors.New("not logged in — run 'crmctl login' first")

// requireSession loads the persisted session or refuses the command.
func requireSession() (session.Session, error) {
	sess, ok := store.Get()
	if !ok || !sess.IsAuthenticated() {
		return session.Session{}, errNotLoggedIn
	}
	return sess, nil
}

// confirm asks a yes/no question on the terminal. Used before every
// delete.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptIfEmpty reads a value interactively when the flag was not given.
func promptIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

// parseID parses a positional record id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

// table renders rows with aligned columns, route:list style.
func table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))

	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

// friendlyError rewrites the common failure kinds into actionable
// messages.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("session expired or token revoked — run 'crmctl login' again")
	case errors.Is(err, screens.ErrForbidden):
		return errors.New("your role does not allow this action")
	case errors.Is(err, screens.ErrAborted):
		return errors.New("aborted")
	default:
		return err
	}
}

func money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
