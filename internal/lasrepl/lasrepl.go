// Package lasrepl is an interactive read-eval-print loop: one line in,
// lexed, parsed, and run against a single persistent scope that survives
// across lines. The ">>> " prompt only prints when standard input is
// actually a terminal (mattn/go-isatty).
package lasrepl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"las/internal/interp"
	"las/internal/lasast"
	"las/internal/lasparser"
	"las/internal/lexer"
)

// Start runs the loop against in/out until EOF or the user types "exit".
func Start(in io.Reader, out io.Writer) {
	interactive := false
	if f, ok := in.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd())
	}

	bw := bufio.NewWriter(out)
	defer bw.Flush()
	lasast.SetStdout(bw)

	fmt.Fprintln(out, "Las REPL | type 'exit' to quit")
	scanner := bufio.NewScanner(in)
	s := interp.New()

	for {
		if interactive {
			fmt.Fprint(out, ">>> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "exit" {
			break
		}
		if line == "" {
			continue
		}

		tokens, err := lexer.New(line, "<repl>").ScanTokens()
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		stmts, err := lasparser.Parse(tokens, line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		if err := interp.Run(stmts, s); err != nil {
			fmt.Fprintln(out, err)
		}
		bw.Flush()
	}
}
