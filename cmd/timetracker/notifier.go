package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

type consoleNotifier struct {
	out io.Writer
}

func (n consoleNotifier) Info(msg string) {
	fmt.Fprintln(n.out, msg)
}

func (n consoleNotifier) Error(msg string) {
	fmt.Fprintln(n.out, errorStyle.Render(msg))
}
