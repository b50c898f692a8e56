// Minimal entry point; CLI handling lives in the Cobra commands under cmd/.
package main

import (
	"github.com/agencysim/growth-simulator/cmd"
)

func main() {
	cmd.Execute()
}
