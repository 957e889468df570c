package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hol-platform/labcheck/cmd/labcheck/commands"
)

func main() {
	commands.Execute()
	os.Exit(run(os.Stdout))
}

// run prints the final verdict and returns the process exit code.
func run(w io.Writer) int {
	switch commands.Result {
	case commands.ValidationFailed:
		fmt.Fprintln(w, commands.FailStyle.Render("Validation failed"))
		return 1
	case commands.ValidationWarned:
		fmt.Fprintln(w, commands.WarnStyle.Render("Validation passed with warnings"))
		return 0
	case commands.ValidationSucceeded:
		fmt.Fprintln(w, commands.PassStyle.Render("Validation succeeded"))
		return 0
	case commands.ExecutionError:
		return 1
	}
	return 0
}
