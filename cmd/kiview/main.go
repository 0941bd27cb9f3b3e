package main

import "github.com/OpenTraceLab/OpenTraceJTAG/cmd/kiview/cmd"

func main() {
	cmd.Execute()
}
