package timetracker

type Command struct {
	Name        string
	Usage       string
	Description string
}

var (
	StartCommand = Command{
		Name:        "start",
		Usage:       "start",
		Description: "start time tracking",
	}
	ToggleCommand = Command{
		Name:        "toggle",
		Usage:       "toggle",
		Description: "start tracking if stopped, otherwise stop it",
	}
	DescribeCommand = Command{
		Name:        "describe",
		Usage:       "describe [text]",
		Description: "set the task description (prompts when text is omitted, empty input cancels)",
	}
	StopCommand = Command{
		Name:        "stop",
		Usage:       "stop",
		Description: "stop time tracking and log the session",
	}
	StatusCommand = Command{
		Name:        "status",
		Usage:       "status",
		Description: "show the current timer status",
	}
	QuitCommand = Command{
		Name:        "quit",
		Usage:       "quit",
		Description: "stop tracking and exit",
	}
)

// Commands lists every command accepted by the tracker in display order.
var Commands = []Command{
	StartCommand,
	ToggleCommand,
	DescribeCommand,
	StopCommand,
	StatusCommand,
	QuitCommand,
}
