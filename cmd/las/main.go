// cmd/las/main.go
package main

import (
	"bufio"
	"fmt"
	"os"

	"las/internal/interp"
	"las/internal/lasast"
	"las/internal/lasfmt"
	"las/internal/lasparser"
	"las/internal/lasrepl"
	"las/internal/lexer"

	_ "las/internal/builtin"
	_ "las/internal/lasdb"
	_ "las/internal/lasid"
	_ "las/internal/lasnet"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		showUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "repl":
		lasrepl.Start(os.Stdin, os.Stdout)
	case "fmt":
		if len(args) < 2 {
			log("no filename provided to fmt command")
		}
		formatFile(args[1])
	case "--help", "-h", "help":
		showUsage()
	default:
		runFile(args[0])
	}
}

func showUsage() {
	fmt.Println("usage: las <file.las>")
	fmt.Println("       las repl")
	fmt.Println("       las fmt <file.las>")
}

func log(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func runFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		log("could not read file: %v", err)
	}

	stdout := bufio.NewWriter(os.Stdout)
	defer stdout.Flush()
	lasast.SetStdout(stdout)

	stmts, err := parseSource(string(source), filename)
	if err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	s := interp.New()
	if err := interp.Run(stmts, s); err != nil {
		stdout.Flush()
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func formatFile(filename string) {
	source, err := os.ReadFile(filename)
	if err != nil {
		log("could not read file: %v", err)
	}
	stmts, err := parseSource(string(source), filename)
	if err != nil {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Print(lasfmt.Format(stmts))
}

func parseSource(source, filename string) ([]lasast.Stmt, error) {
	tokens, err := lexer.New(source, filename).ScanTokens()
	if err != nil {
		return nil, err
	}
	return lasparser.Parse(tokens, source)
}
