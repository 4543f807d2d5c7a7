package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/XJIeI5/flatcalc/internal/calc"
	"github.com/XJIeI5/flatcalc/internal/parser"
)

func main() {
	verbosePtr := flag.Bool("v", false, "print postfix form and failure reason")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: calc [-v] <expression>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbosePtr {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	expr := flag.Arg(0)
	if postfix, ok := parser.ParseToPostfix(expr); ok {
		logger.Debug("postfix", "expression", expr, "postfix", parser.Format(postfix))
	}

	res, err := calc.Calculate(expr)
	if err != nil {
		logger.Debug("rejected", "reason", calc.Reason(err), "error", errors.Unwrap(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(strconv.FormatFloat(res, 'g', -1, 64))
}
