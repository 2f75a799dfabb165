package main

import (
	"fmt"
	"os"

	"github.com/njprem/Thomas_Hospital_BackEnd/internal/app"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/cli"
	"github.com/njprem/Thomas_Hospital_BackEnd/internal/config"
)

func main() {
	root := cli.NewRootCommand(func() (*app.App, error) {
		return app.New(config.Load())
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "thomasctl:", err)
		os.Exit(1)
	}
}
