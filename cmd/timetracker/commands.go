package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/benjamonnguyen/timetracker"
)

type tracker interface {
	Start(silent bool)
	Toggle()
	Stop(silent bool)
	SetDescription(string)
	Status() timetracker.Status
	Duration() time.Duration
	Description() string
}

// runCommands dispatches one command per input line until quit or EOF.
func runCommands(in io.Reader, out io.Writer, t tracker) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		name, arg, _ := strings.Cut(strings.TrimSpace(scanner.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(name) {
		case "":
		case timetracker.StartCommand.Name:
			t.Start(false)
		case timetracker.ToggleCommand.Name:
			t.Toggle()
		case timetracker.StopCommand.Name:
			t.Stop(false)
		case timetracker.DescribeCommand.Name:
			if arg == "" {
				fmt.Fprint(out, "Description: ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				arg = strings.TrimSpace(scanner.Text())
			}
			if arg == "" {
				// cancelled
				continue
			}
			t.SetDescription(arg)
		case timetracker.StatusCommand.Name:
			fmt.Fprintf(out, "%s | %s\n", statusText(t.Duration(), t.Status()), t.Description())
		case timetracker.QuitCommand.Name, "exit":
			return nil
		case "help":
			printHelp(out)
		default:
			fmt.Fprintf(out, "unknown command %q (try help)\n", name)
		}
	}
	return scanner.Err()
}

func printHelp(out io.Writer) {
	for _, c := range timetracker.Commands {
		fmt.Fprintf(out, "  %-16s %s\n", c.Usage, c.Description)
	}
}
