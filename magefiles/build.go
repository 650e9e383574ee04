//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the command line renderer into bin/raytracer.
func (Build) Cli() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/raytracer", "."), withStream())
	return err
}

// Builds the web server into bin/raytracer-web.
func (Build) Web() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/raytracer-web", "./web"), withStream())
	return err
}

// Builds both binaries.
func (Build) All() {
	mg.SerialDeps(Build.Cli, Build.Web)
}

// Runs the test suite.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Runs vet over every package.
func Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
