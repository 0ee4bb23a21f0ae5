package main

import "github.com/skjold/chainwire/cmd/chainwire/cmd"

func main() {
	cmd.Execute()
}
