package main

import "github.com/mouse-blink/ecslua/cmd"

func main() {
	cmd.Execute()
}
