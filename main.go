package main

import "github.com/diugotfmc/nfrecon/cmd"

func main() {
	cmd.Execute()
}
