package main

import (
	"os"

	"github.com/cellvision/trainctl/cmd"
	"github.com/cellvision/trainctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
