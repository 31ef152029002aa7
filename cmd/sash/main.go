package main

import "github.com/bryanchriswhite/sash/cmd/sash/commands"

func main() {
	commands.Execute()
}
