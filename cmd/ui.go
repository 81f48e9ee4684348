package cmd

import (
	"os"

	"github.com/fatih/color"
)

// Progress goes to stderr; stdout carries the loader directives.
var (
	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	detailColor  = color.New(color.FgWhite)
)

func info(format string, args ...interface{}) { infoColor.Fprintf(os.Stderr, format+"\n", args...) }

func success(format string, args ...interface{}) {
	successColor.Fprintf(os.Stderr, format+"\n", args...)
}

func warn(format string, args ...interface{}) { warnColor.Fprintf(os.Stderr, format+"\n", args...) }

func detail(format string, args ...interface{}) {
	detailColor.Fprintf(os.Stderr, format+"\n", args...)
}
