package main

import "github.com/Litote/kgenerator/cmd"

func main() {
	cmd.Execute()
}
