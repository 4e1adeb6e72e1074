package main

import "github.com/agroplan/agroplan/cmd"

func main() {
	cmd.Execute()
}
