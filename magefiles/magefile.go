//go:build mage

// Package main provides build targets for the shipmgr project using Mage.
//
// Usage:
//
//	mage build        Compile the shipmgr binary to bin/
//	mage test:all     Run all tests
//	mage test:unit    Run tests without the in-process CLI suite
//	mage test:cover   Run all tests with a coverage profile
//	mage lint         Run golangci-lint
//	mage vet          Run go vet
//	mage clean        Remove build artifacts
//	mage install      Install shipmgr to GOPATH/bin
//	mage image        Build the container image
//	mage imageClean   Remove the container image
package main
