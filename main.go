package main

import (
	"os"

	"github.com/fleetmind/driverguide/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
