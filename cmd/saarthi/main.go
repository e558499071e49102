package main

import "github.com/rohan/saarthi/internal/cli"

func main() {
	cli.Execute()
}
