package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Touch()
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	EditUser(ctx context.Context, id int64) error
	Whoami(ctx context.Context) error
	Site(ctx context.Context) error
	Continue(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line from the provided scanner, parses the first token as
// the command, and dispatches to methods on 'a'. Unknown commands are
// reported back to the user. The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Every submitted line counts as user activity and resets the idle clock,
// except "continue", which goes through its own handler so the dismissal of
// an idle warning stays a deliberate act.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors to the user. This keeps the loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tempest %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		if cmd != "continue" {
			a.Touch()
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, edit <id>, site, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, forgot, site, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditUser(ctx, id)

		case "whoami":
			_ = a.Whoami(ctx)

		case "site":
			_ = a.Site(ctx)

		case "continue":
			_ = a.Continue(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
