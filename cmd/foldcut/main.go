package main

import "github.com/DrSkyle/foldcut/cmd/foldcut/commands"

func main() {
	commands.Execute()
}
