// Package main is the entry point for the dbxkit CLI.
package main

import (
	"dbxkit/cli/cmd"
)

func main() {
	cmd.Execute()
}
