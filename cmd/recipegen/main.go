package main

import "github.com/pageza/recipegen/internal/cli"

func main() {
	cli.Execute()
}
