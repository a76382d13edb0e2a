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
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Browse(ctx context.Context) error
	Saved(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Filter(ctx context.Context) error
	Random(ctx context.Context) error
	Like(ctx context.Context, args []string) error
	Write(ctx context.Context, args []string) error
	Inbox(ctx context.Context) error
	Read(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the aceletters CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - signup         — create an account
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - browse         — list profiles (current filter applied)
//	  - saved          — list liked profiles
//	  - search <text>  — free text search over the directory
//	  - filter         — set the categorical/age filter interactively
//	  - random         — pick a random profile from the current listing
//	  - like <n|id>    — toggle a like
//	  - write <n|id>   — compose a letter
//	  - inbox          — list received letters, newest first
//	  - read <n>       — read a letter (marks it read)
//	  - delete <n>     — delete a letter (asks for confirmation)
//	  - profile        — show your own profile
//	  - edit           — edit your profile
//	  - upload <path>  — upload an avatar image
//	  - whoami         — show the current identity
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ace> %s > ", statusFn()))
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

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (b)rowse, saved, search, filter, random, like, write, inbox, read, delete, profile, edit, upload, whoami, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, exit")
			}

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "b", "browse":
			_ = a.Browse(ctx)

		case "saved":
			_ = a.Saved(ctx)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			_ = a.Search(ctx, args)

		case "filter":
			_ = a.Filter(ctx)

		case "random":
			_ = a.Random(ctx)

		case "like":
			if len(args) == 0 {
				printlnFn("Usage: like <number|id>")
				continue
			}
			_ = a.Like(ctx, args)

		case "write":
			if len(args) == 0 {
				printlnFn("Usage: write <number|id>")
				continue
			}
			_ = a.Write(ctx, args)

		case "inbox":
			_ = a.Inbox(ctx)

		case "read":
			if len(args) == 0 {
				printlnFn("Usage: read <number>")
				continue
			}
			_ = a.Read(ctx, args)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <number>")
				continue
			}
			_ = a.Delete(ctx, args)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args)

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
