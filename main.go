package main

import (
	"github.com/jjtimmons/biohack/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
