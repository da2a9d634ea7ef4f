// Package main is the entry point for the bagpack CLI.
//
// bagpack collects the installed Homebrew, npm and pip packages and reports
// which of them have newer versions available.
package main

import "github.com/ajxudir/bagpack/cmd"

func main() {
	cmd.Execute()
}
