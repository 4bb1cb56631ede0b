package main

import "github.com/repofetch/repofetch/cmd"

func main() {
	cmd.Execute()
}
