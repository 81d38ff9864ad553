package main

import "github.com/wrapsnake/engine/cmd/snake/commands"

func main() {
	commands.Execute()
}
