// Package console is the interactive text menu. It resolves names through the
// catalog, calls the engines and prints receipts, invoices and transcripts.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/TONNY-TED/Results-Management-System/internal/app/services"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/logger"
)

// errQuit ends the session when input runs out mid-prompt
var errQuit = errors.New("input closed")

type action struct {
	key   string
	label string
	run   func(ctx context.Context) error
}

// Menu runs a single-user session over the services
type Menu struct {
	svc     *services.Services
	in      *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger
	actions []action
}

// New creates a menu reading from in and writing to out
func New(svc *services.Services, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
		log: logger.WithComponent("menu"),
	}
	m.actions = []action{
		{"1", "Enter result", m.enterResult},
		{"2", "Enter supplementary exam", m.enterSUP},
		{"3", "View transcript", m.viewTranscript},
		{"4", "Register student for new semester", m.registerSemester},
		{"5", "Set fee structure", m.setFeeStructure},
		{"6", "Record payment", m.recordPayment},
		{"7", "View outstanding fees", m.viewOutstanding},
		{"8", "Print fee statement", m.printStatement},
		{"9", "Assign instructor to subject", m.assignInstructor},
		{"10", "Schedule class", m.scheduleClass},
		{"11", "Allocate student to class", m.allocateStudent},
		{"12", "View timetable", m.viewTimetable},
		{"13", "View GPA", m.viewGPA},
	}
	return m
}

// Run shows the menu until the user exits or input ends. Operation errors are
// printed and the menu continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.printMenu()
		choice, err := m.prompt("Choose an option")
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == "0" || strings.EqualFold(choice, "q") {
			m.println("Goodbye.")
			return nil
		}

		act, ok := m.lookup(choice)
		if !ok {
			m.println("Invalid option, try again.")
			continue
		}

		err = act.run(ctx)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			m.reportError(err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
}

func (m *Menu) lookup(key string) (action, bool) {
	for _, a := range m.actions {
		if a.key == key {
			return a, true
		}
	}
	return action{}, false
}

func (m *Menu) printMenu() {
	m.println("")
	m.println("==== Results Management System ====")
	for _, a := range m.actions {
		m.printf("%3s. %s\n", a.key, a.label)
	}
	m.println("  0. Exit")
}

// reportError prints an error the way the user should see it
func (m *Menu) reportError(err error) {
	switch {
	case errors.Is(err, apperrors.ErrStorage):
		m.log.Error().Err(err).Msg("Menu operation failed")
		m.println("Error: the database rejected the operation. Check the log for details.")
	case errors.Is(err, apperrors.ErrNoFeeStructure):
		m.println("Not applicable: no fee structure is defined for that program and semester.")
	default:
		m.printf("Error: %s\n", err.Error())
	}
}

func (m *Menu) prompt(label string) (string, error) {
	m.printf("%s: ", label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		m.println("")
		return "", errQuit
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}
