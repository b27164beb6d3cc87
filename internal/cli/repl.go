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
	isLoggedIn(ctx context.Context) bool

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error

	PatientAdd(ctx context.Context) error
	PatientList(ctx context.Context) error
	PatientShow(ctx context.Context, id string) error
	PatientUpdate(ctx context.Context, id string) error
	PatientDelete(ctx context.Context, id string) error

	DoctorAdd(ctx context.Context) error
	DoctorList(ctx context.Context) error
	DoctorShow(ctx context.Context, id string) error
	DoctorUpdate(ctx context.Context, id string) error
	DoctorDelete(ctx context.Context, id string) error
	DoctorImport(ctx context.Context, path string) error
	DoctorClear(ctx context.Context) error

	AppointmentAdd(ctx context.Context) error
	AppointmentList(ctx context.Context) error
	AppointmentShow(ctx context.Context, id string) error
	AppointmentUpdate(ctx context.Context, id string) error
	AppointmentDelete(ctx context.Context, id string) error
}

// runREPL reads a line from scanner, parses the first token as the command
// and dispatches to methods on 'a'. Entity commands take the form
// "<entity> <action> [id|path]", e.g. "patient update 42" or
// "doctor import seed.json". The loop exits on scanner EOF or when the user
// types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures. This keeps the loop focused on parsing and dispatch.
func runREPL(ctx context.Context, a execIface, statusFn func(ctx context.Context) string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("clinic %s> ", statusFn(ctx)))
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
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: whoami, logout, exit")
				printlnFn("  patient add|list|show <id>|update <id>|delete <id>")
				printlnFn("  doctor  add|list|show <id>|update <id>|delete <id>|import <file>|clear")
				printlnFn("  appt    add|list|show <id>|update <id>|delete <id>")
			} else {
				printlnFn("Available commands: register, login, exit")
				printlnFn("  patient|doctor|appt list and show work without logging in")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "patient":
			runEntity(ctx, args, entityCmds{
				add:    a.PatientAdd,
				list:   a.PatientList,
				show:   a.PatientShow,
				update: a.PatientUpdate,
				delete: a.PatientDelete,
			})

		case "doctor":
			runEntity(ctx, args, entityCmds{
				add:     a.DoctorAdd,
				list:    a.DoctorList,
				show:    a.DoctorShow,
				update:  a.DoctorUpdate,
				delete:  a.DoctorDelete,
				importF: a.DoctorImport,
				clear:   a.DoctorClear,
			})

		case "appt", "appointment":
			runEntity(ctx, args, entityCmds{
				add:    a.AppointmentAdd,
				list:   a.AppointmentList,
				show:   a.AppointmentShow,
				update: a.AppointmentUpdate,
				delete: a.AppointmentDelete,
			})

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

// entityCmds groups the handlers for one entity. importF and clear are only
// set for doctors.
type entityCmds struct {
	add     func(ctx context.Context) error
	list    func(ctx context.Context) error
	show    func(ctx context.Context, id string) error
	update  func(ctx context.Context, id string) error
	delete  func(ctx context.Context, id string) error
	importF func(ctx context.Context, path string) error
	clear   func(ctx context.Context) error
}

func runEntity(ctx context.Context, args []string, c entityCmds) {
	if len(args) == 0 {
		printlnFn("Usage: <entity> add|list|show <id>|update <id>|delete <id>")
		return
	}

	action := args[0]
	rest := args[1:]

	needArg := func(usage string) (string, bool) {
		if len(rest) == 0 {
			printlnFn("Usage:", usage)
			return "", false
		}
		return rest[0], true
	}

	switch action {
	case "add":
		_ = c.add(ctx)
	case "list":
		_ = c.list(ctx)
	case "show":
		if id, ok := needArg("show <id>"); ok {
			_ = c.show(ctx, id)
		}
	case "update":
		if id, ok := needArg("update <id>"); ok {
			_ = c.update(ctx, id)
		}
	case "delete":
		if id, ok := needArg("delete <id>"); ok {
			_ = c.delete(ctx, id)
		}
	case "import":
		if c.importF == nil {
			printlnFn("Unknown action:", action)
			return
		}
		if path, ok := needArg("import <file>"); ok {
			_ = c.importF(ctx, path)
		}
	case "clear":
		if c.clear == nil {
			printlnFn("Unknown action:", action)
			return
		}
		_ = c.clear(ctx)
	default:
		printlnFn("Unknown action:", action)
	}
}
