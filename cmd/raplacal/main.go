package main

import (
	// Rapla timestamps are wall-clock Europe/Berlin; embed the zone data so
	// the binary also works on hosts without a tzdata package.
	_ "time/tzdata"

	"raplacal/internal/cli"
)

func main() {
	cli.Execute()
}
