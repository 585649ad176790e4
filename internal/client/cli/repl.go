package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it
// with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	Send(ctx context.Context, args []string)
	Receive(ctx context.Context, codeArg string)
	List(ctx context.Context)
	Remove(ctx context.Context, codeArg string)
	History()
	Sync(ctx context.Context)
}

// runREPL starts a simple read–eval–print loop for the quicksh CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	send <path> [expire]  — upload a file (expire 0..4: 15m, 1h, 12h, 1d, 3d)
//	recv [code]           — download; without a code the 5-cell entry opens
//	list                  — fetch the server's view of owned transfers
//	rm <code>             — delete an owned transfer
//	history               — list the rows rendered in this session
//	sync                  — re-run cache reconciliation
//	help                  — show available commands
//	exit | quit           — leave the program
//
// Command handlers surface their own status messages; the loop stays
// focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("quicksh > ")
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
			printlnFn("Available commands: send <path> [expire], recv [code], list, rm <code>, history, sync, exit")

		case "send":
			a.Send(ctx, args)

		case "recv", "get":
			codeArg := ""
			if len(args) > 0 {
				codeArg = args[0]
			}
			a.Receive(ctx, codeArg)

		case "l", "list":
			a.List(ctx)

		case "rm", "delete":
			if len(args) == 0 {
				printlnFn("Usage: rm <code>")
				continue
			}
			a.Remove(ctx, args[0])

		case "history":
			a.History()

		case "sync":
			a.Sync(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
