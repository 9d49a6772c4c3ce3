package main

import (
	"fmt"
	"os"

	"github.com/netkat-io/netkat-core/commands/netkat"
)

func main() {
	cmd := netkat.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
