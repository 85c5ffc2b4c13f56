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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context, status string) error
	Refresh(ctx context.Context) error
	Add(ctx context.Context) error
	Show(ctx context.Context, id int64) error
	Edit(ctx context.Context, id int64) error
	Done(ctx context.Context, id int64) error
	Remove(ctx context.Context, id int64) error
}

// Run starts the dashboard loop on stdin.
func (a *App) Run(ctx context.Context) {
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.status, scanner)
}

// runREPL reads a line, parses the first token as the command, and dispatches.
// The loop exits on EOF or "exit"/"quit". Command handlers print their own
// errors; nothing is retried automatically.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("karyamate> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist [open|completed], add, show N, edit N, done N, rm N, refresh, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "l", "list":
			status := ""
			if len(args) > 0 {
				status = args[0]
			}
			_ = a.List(ctx, status)

		case "refresh":
			_ = a.Refresh(ctx)

		case "add":
			_ = a.Add(ctx)

		case "show", "edit", "done", "rm":
			if len(args) == 0 {
				printlnFn("Usage:", cmd, "<task id>")
				continue
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				printlnFn("Invalid task id:", args[0])
				continue
			}
			switch cmd {
			case "show":
				_ = a.Show(ctx, id)
			case "edit":
				_ = a.Edit(ctx, id)
			case "done":
				_ = a.Done(ctx, id)
			case "rm":
				_ = a.Remove(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
