package main

import (
	"fmt"
	"os"

	"github.com/rpggio/fcea/internal/logging"
)

func main() {
	logger := logging.New(os.Stderr, os.Getenv("FCEA_LOG_LEVEL"))
	app := NewApp(os.Stdout, logger)

	if err := SetupCommands(app).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
