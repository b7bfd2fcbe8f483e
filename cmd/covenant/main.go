package main

import "github.com/Laisky/go-covenant/cmd"

func main() {
	cmd.Execute()
}
