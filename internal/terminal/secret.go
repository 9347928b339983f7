package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ReadSecret prints prompt to out and reads one line from in. On a terminal
// the input is not echoed; otherwise (piped input in CI) the first line is
// read as-is. Surrounding whitespace is trimmed.
func ReadSecret(in *os.File, out io.Writer, prompt string) (string, error) {
	if IsInteractive(in) {
		fmt.Fprint(out, prompt)
		b, err := term.ReadPassword(int(in.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.New("no input on stdin")
	}
	return line, nil
}
