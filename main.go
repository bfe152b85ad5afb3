package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jesspatton/backtick/cli"
	"github.com/jesspatton/backtick/config"
	"github.com/jesspatton/backtick/sink"
	"github.com/jesspatton/backtick/ui"
)

// main dispatches on the argument list: with arguments backtick runs as a
// one-shot command, without it starts the interactive prompt.
func main() {
	if len(os.Args) > 1 {
		os.Exit(cli.Execute(os.Args[1:]))
	}
	os.Exit(runInteractive())
}

func runInteractive() int {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	m, err := ui.NewModel(cwd, cfg, sink.Clipboard{}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if fm, ok := final.(ui.Model); ok && fm.FinalMessage() != "" {
		fmt.Println(fm.FinalMessage())
	}
	return 0
}
