package main

import "github.com/OpenTraceLab/OpenTraceBoards/cmd/vvml/cmd"

func main() {
	cmd.Execute()
}
