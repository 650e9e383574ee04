package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	if err := core.SetLogLevel(*logLevel); err != nil {
		core.LogError("invalid log level", "level", *logLevel, "err", err)
		os.Exit(2)
	}

	webServer := server.NewServer(*port)

	core.LogInfo("Whitted Raytracer Web Server")
	core.LogInfo("ready", "url", "http://localhost:"+strconv.Itoa(*port))

	if err := webServer.Start(); err != nil {
		core.LogError("server stopped", "err", err)
		os.Exit(1)
	}
}
