package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const commandHelp = `Commands:
  <file_path>         Add a file to the staged list
  <directory_path>    Add all files in a directory
  <glob_pattern>      Add files matching a glob pattern (e.g., *.go)
  l                   List all staged files
  r <index>           Remove a file by index
  c                   Clear all staged files
  h                   Toggle this help message
  q                   Quit the program
  ` + "`" + `                   Copy all staged files to the clipboard and quit`

func (m Model) renderHelp() string {
	title := titleStyle.Render("HELP")
	keyView := m.help.View(m.keys)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		paneStyle.Render(fmt.Sprintf("%s\n\n%s\n\n%s", title, commandHelp, keyView)),
	)
}
