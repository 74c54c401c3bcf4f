package main

import "toolkeep/internal/cli"

func main() {
	cli.Execute()
}
