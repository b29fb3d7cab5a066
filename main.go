package main

import (
	"github.com/monetize-software/gateway-probe/internal/runner"
)

func main() {
	runner.Run()
}
