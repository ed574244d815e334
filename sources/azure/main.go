package main

import (
	_ "go.uber.org/automaxprocs"

	"github.com/overmindtech/cache-discovery/sources/azure/cmd"
)

func main() {
	cmd.Execute()
}
