package main

import "github.com/RATIU5/zaggonaut/cmd"

func main() {
	cmd.Execute()
}
