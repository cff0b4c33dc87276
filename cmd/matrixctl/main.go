package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Dan9191/matrix-service/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(os.Stdout, time.Now).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
