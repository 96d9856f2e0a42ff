// Package main is the entry point for the evalcheck CLI.
package main

import "github.com/cytsaiap-xyz/opencode-evals/cmd"

func main() {
	cmd.Execute()
}
