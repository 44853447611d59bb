package main

import "github.com/mcoot/gomemo/internal/cli"

func main() {
	cli.Execute()
}
