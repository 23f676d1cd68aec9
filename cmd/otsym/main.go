package main

import "github.com/OpenTraceLab/OpenTraceSymbol/cmd/otsym/cmd"

func main() {
	cmd.Execute()
}
