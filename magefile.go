//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binary = "codewise"

// Default target to run when none is specified
var Default = Build

// Build compiles the codewise binary
func Build() error {
	mg.Deps(Vet)
	fmt.Println("Building", binary)
	return sh.RunV("go", "build", "-o", binary, "./cmd/codewise")
}

// Install installs codewise into GOPATH/bin
func Install() error {
	mg.Deps(Build)
	return sh.RunV("go", "install", "./cmd/codewise")
}

// Test runs the unit tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs the unit tests with the race detector
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Integration runs the tests that need API keys or external services
func Integration() error {
	env := map[string]string{"CODEWISE_LIVE_SEARCH": "1"}
	return sh.RunWithV(env, "go", "test", "-count=1", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binary)
}
