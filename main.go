package main

import "github.com/alexiusacademia/gobeamdiag/cmd"

func main() {
	cmd.Execute()
}
