// Command otrf is the OpenTraceRF Smith chart and impedance-matching client.
package main

import "github.com/OpenTraceLab/OpenTraceRF/cmd/otrf/cmd"

func main() {
	cmd.Execute()
}
