package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Get(ctx context.Context, args []string) error
	Reveal(ctx context.Context, args []string) error
	Update(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Untag(ctx context.Context, args []string) error
	SetTags(ctx context.Context, args []string) error
	Export(ctx context.Context, args []string) error
}

var errUsage = errors.New("usage")

// runREPL reads commands from reader until EOF, "exit" or "quit".
//
// The first token of each line is the command; the remaining tokens are
// passed to commands that take arguments. Vault commands are refused until
// the user has logged in. Errors returned by command handlers are ignored
// here; handlers report their own errors.
//
//	Not logged in: help, register, login, exit | quit
//	Logged in:     help, list, add, get, reveal, update, delete,
//	               tag, untag, settags, export [save], logout, exit | quit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("cv %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, get <id>, reveal <id>, update <id>, delete <id>, " +
					"tag <id> <tag>..., untag <id> <tag>..., settags <id> [<tag>...], export [save], logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue

		case "register":
			_ = a.Register(ctx)
			continue

		case "login":
			_ = a.Login(ctx)
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		handler, ok := vaultCommands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := handler(ctx, a, args); errors.Is(err, errUsage) {
			printlnFn(err.Error())
		}
	}
}

type commandFunc func(ctx context.Context, a execIface, args []string) error

var vaultCommands = map[string]commandFunc{
	"l":    func(ctx context.Context, a execIface, _ []string) error { return a.List(ctx) },
	"list": func(ctx context.Context, a execIface, _ []string) error { return a.List(ctx) },
	"add":  func(ctx context.Context, a execIface, _ []string) error { return a.Add(ctx) },
	"get": func(ctx context.Context, a execIface, args []string) error {
		return withID("get <id>", args, func() error { return a.Get(ctx, args) })
	},
	"reveal": func(ctx context.Context, a execIface, args []string) error {
		return withID("reveal <id>", args, func() error { return a.Reveal(ctx, args) })
	},
	"update": func(ctx context.Context, a execIface, args []string) error {
		return withID("update <id>", args, func() error { return a.Update(ctx, args) })
	},
	"delete": func(ctx context.Context, a execIface, args []string) error {
		return withID("delete <id>", args, func() error { return a.Delete(ctx, args) })
	},
	"tag": func(ctx context.Context, a execIface, args []string) error {
		if len(args) < 2 {
			return usage("tag <id> <tag>...")
		}
		return a.Tag(ctx, args)
	},
	"untag": func(ctx context.Context, a execIface, args []string) error {
		if len(args) < 2 {
			return usage("untag <id> <tag>...")
		}
		return a.Untag(ctx, args)
	},
	"settags": func(ctx context.Context, a execIface, args []string) error {
		return withID("settags <id> [<tag>...]", args, func() error { return a.SetTags(ctx, args) })
	},
	"export": func(ctx context.Context, a execIface, args []string) error { return a.Export(ctx, args) },
	"logout": func(ctx context.Context, a execIface, _ []string) error { return a.Logout(ctx) },
}

func usage(s string) error {
	return fmt.Errorf("%w: %s", errUsage, s)
}

func withID(u string, args []string, fn func() error) error {
	if len(args) == 0 {
		return usage(u)
	}
	return fn()
}
