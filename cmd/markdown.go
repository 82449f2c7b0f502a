package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		Logger.WithError(err).Debug("rendering markdown")
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
