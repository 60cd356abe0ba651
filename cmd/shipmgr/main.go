// Package main provides the shipmgr CLI.
package main

import "github.com/mesh-intelligence/shipmgr/internal/cli"

func main() {
	cli.Execute()
}
