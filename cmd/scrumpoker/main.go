package main

import "github.com/mcoot/scrumpoker/internal/cli"

func main() {
	cli.Execute()
}
