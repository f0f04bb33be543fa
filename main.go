package main

import "guardias/cmd"

func main() {
	cmd.Execute()
}
