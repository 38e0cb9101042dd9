package main

import "github.com/minhtran-ct/collab-view/cmd"

func main() {
	cmd.Execute()
}
