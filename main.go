package main

import (
	"os"

	"github.com/0xb0rn3/gitnav/pkg/cli"
)

func main() {
	if err := cli.New().Run(os.Args); err != nil {
		os.Exit(1)
	}
}
