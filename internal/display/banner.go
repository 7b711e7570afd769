package display

import (
	"fmt"
	"os"
)

// PrintBanner prints the ASCII art banner; colored when stdout is a TTY
// and NO_COLOR is unset.
func PrintBanner() {
	color := isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == ""
	if color {
		fmt.Fprint(os.Stdout, "\033[1;96m")
	}
	fmt.Fprint(os.Stdout, ` _     _ _
| |__ (_) |___   __
| '_ \| | __\ \ / /
| |_) | | |_ \ V /
|_.__/|_|\__| \_/
`)
	if color {
		fmt.Fprintln(os.Stdout, "\033[0m")
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
