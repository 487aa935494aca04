package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isSignedIn() bool
	screenName() string
	report(ctx context.Context, err error)

	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error
	SignOut(ctx context.Context) error
	Open(ctx context.Context, screen string, args []string) error

	List(ctx context.Context) error
	Reload(ctx context.Context) error
	Filter(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
	Select(ctx context.Context, id string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
	Enroll(ctx context.Context, courseID string) error
	Unenroll(ctx context.Context, courseID string) error
	Toggle(ctx context.Context) error
}

var screens = map[string]bool{
	"users": true, "courses": true, "modules": true, "people": true,
	"assignments": true, "profile": true, "lab": true,
}

// runREPL starts a simple read–eval–print loop for the Kambaz CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Errors returned by handlers go to a.report,
// which decides whether the user sees them. The loop exits on EOF or when
// the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Any time:
//	  - help                   : show available commands
//	  - signin | signup        : authenticate or create an account
//	  - signout                : end the session
//	  - users | courses | profile | lab
//	  - modules|people|assignments <cid>
//	  - exit | quit            : leave the program
//
//	On a screen:
//	  - list | reload          : show cached rows or refetch them
//	  - filter <key> <value>   : narrow the rows (role, name, search, title)
//	  - clear                  : drop all filters
//	  - select <id>            : show one row in detail
//	  - add | edit <id> | delete <id>
//	  - enroll <cid> | unenroll <cid> | toggle  (courses)
//	  - remove <id>            : legacy todo removal (lab)
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("kambaz%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage:", usage)
				return "", false
			}
			return args[0], true
		}

		switch {
		case cmd == "help":
			printHelp(a)

		case cmd == "signin", cmd == "login":
			a.report(ctx, a.SignIn(ctx))

		case cmd == "signup", cmd == "register":
			a.report(ctx, a.SignUp(ctx))

		case cmd == "signout", cmd == "logout":
			a.report(ctx, a.SignOut(ctx))

		case screens[cmd]:
			a.report(ctx, a.Open(ctx, cmd, args))

		case cmd == "exit", cmd == "quit":
			printlnFn("Bye!")
			return

		case a.screenName() == "":
			printlnFn("Unknown command:", cmd, "(open a screen first, see 'help')")

		case cmd == "l", cmd == "list":
			a.report(ctx, a.List(ctx))

		case cmd == "reload":
			a.report(ctx, a.Reload(ctx))

		case cmd == "filter":
			if len(args) < 1 {
				printlnFn("Usage: filter <key> <value>")
				continue
			}
			a.report(ctx, a.Filter(ctx, args[0], strings.Join(args[1:], " ")))

		case cmd == "clear":
			a.report(ctx, a.Clear(ctx))

		case cmd == "select", cmd == "show":
			if id, ok := arg("select <id>"); ok {
				a.report(ctx, a.Select(ctx, id))
			}

		case cmd == "add":
			a.report(ctx, a.Add(ctx))

		case cmd == "edit":
			if id, ok := arg("edit <id>"); ok {
				a.report(ctx, a.Edit(ctx, id))
			}

		case cmd == "delete":
			if id, ok := arg("delete <id>"); ok {
				a.report(ctx, a.Delete(ctx, id))
			}

		case cmd == "remove":
			if id, ok := arg("remove <id>"); ok {
				a.report(ctx, a.Remove(ctx, id))
			}

		case cmd == "enroll":
			if id, ok := arg("enroll <cid>"); ok {
				a.report(ctx, a.Enroll(ctx, id))
			}

		case cmd == "unenroll":
			if id, ok := arg("unenroll <cid>"); ok {
				a.report(ctx, a.Unenroll(ctx, id))
			}

		case cmd == "toggle":
			a.report(ctx, a.Toggle(ctx))

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if a.isSignedIn() {
		printlnFn("Available commands: courses, modules <cid>, people <cid>, assignments <cid>, users, profile, lab, signout, exit")
	} else {
		printlnFn("Available commands: signin, signup, courses, lab, exit")
	}
	if a.screenName() != "" {
		printlnFn("On this screen: list, reload, filter <key> <value>, clear, select <id>, add, edit <id>, delete <id>, enroll <cid>, unenroll <cid>, toggle, remove <id>")
	}
}
