package main

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/docket/internal/cli"
)

func main() {
	app := &cli.App{Out: os.Stdout, Err: os.Stderr}
	if err := cli.NewRootCmd(app).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
