package main

import (
	"os"

	"github.com/blendsoftware/posadmin/cmd/posadmin/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
