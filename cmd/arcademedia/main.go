package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"arcademedia/internal/faults"
)

const version = "0.3.0"

func main() {
	root := newRootCommand()
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(faults.ExitCode(err))
	}
}
