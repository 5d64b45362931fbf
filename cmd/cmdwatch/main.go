package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/cli"
	"github.com/mdcognizant/cursor-sub001/internal/infrastructure/cli/commands"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		var exitErr commands.ExitCodeError
		if errors.As(err, &exitErr) {
			if exitErr.Msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.Msg)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("CMDWATCH_DEBUG"), "1") || strings.EqualFold(os.Getenv("CMDWATCH_DEBUG"), "true")
}
