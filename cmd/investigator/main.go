package main

import (
	"github.com/NVIDIA/node-investigator/pkg/cli"
)

func main() {
	cli.Execute()
}
