//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders a scene; set SCENE to choose it (default "default").
func (Run) Render() error {
	mg.Deps(Build.Cli)
	scene := os.Getenv("SCENE")
	if scene == "" {
		scene = "default"
	}
	fmt.Printf("Rendering %s...\n", scene)
	_, err := executeCmd("./bin/raytracer", withArgs("-scene", scene), withStream())
	return err
}

// Renders every builtin scene at a small size into output/.
func (Run) Gallery() error {
	mg.Deps(Build.Cli)
	out, err := executeCmd("./bin/raytracer", withArgs("-list"))
	if err != nil {
		return err
	}
	for _, name := range builtinNames(out) {
		if _, err := executeCmd("./bin/raytracer", withArgs("-scene", name, "-width", "320", "-height", "240"), withStream()); err != nil {
			return err
		}
	}
	return nil
}

// Starts the web server from the web directory so it finds static/ and ../scenes.
func (Run) Web() error {
	mg.Deps(Build.Web)
	_, err := executeCmd("../bin/raytracer-web", withDir("web"), withStream())
	return err
}
