package main

import "github.com/toyz/nestgen/internal/cli"

func main() {
	cli.Execute()
}
