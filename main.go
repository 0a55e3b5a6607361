package main

import "github.com/jsphweid/diatonicpad/cmd"

func main() {
	cmd.Execute()
}
