package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// watchDebounce absorbs the burst of events editors emit on save
const watchDebounce = 200 * time.Millisecond

type options struct {
	scene    string
	width    int
	height   int
	output   string
	workers  int
	logLevel string
	watch    bool
	list     bool
	help     bool
}

func main() {
	opts := options{}
	flag.StringVar(&opts.scene, "scene", "default", "Builtin scene name, scene file ID (file:<name>) or path to a .toml/.json scene")
	flag.IntVar(&opts.width, "width", 0, "Image width (0 keeps the scene's width)")
	flag.IntVar(&opts.height, "height", 0, "Image height (0 keeps the scene's height)")
	flag.StringVar(&opts.output, "output", "", "Output file (.png, .bmp, .tif, .pfm, .hdr); default output/<scene>/render_<timestamp>.png")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = one per CPU)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&opts.watch, "watch", false, "Re-render whenever the scene file changes")
	flag.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	flag.BoolVar(&opts.help, "help", false, "Show help information")
	flag.Parse()

	if opts.help {
		printHelp(os.Stdout)
		return
	}

	if err := core.SetLogLevel(opts.logLevel); err != nil {
		core.LogError("invalid log level", "level", opts.logLevel, "err", err)
		os.Exit(2)
	}

	if opts.list {
		if err := listScenes(os.Stdout, scene.FindScenesDir()); err != nil {
			core.LogError("listing scenes failed", "err", err)
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := renderOnce(ctx, opts, time.Now()); err != nil {
		core.LogError("render failed", "scene", opts.scene, "err", err)
		if !opts.watch {
			os.Exit(1)
		}
	}

	if opts.watch {
		if err := watchScene(ctx, opts); err != nil && !errors.Is(err, context.Canceled) {
			core.LogError("watch failed", "err", err)
			os.Exit(1)
		}
	}
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Whitted Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	flag.CommandLine.SetOutput(w)
	flag.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtin scenes:")
	for _, b := range scene.Builtins() {
		fmt.Fprintf(w, "  %-11s - %s\n", b.Name, b.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png")
}

func listScenes(w io.Writer, dir string) error {
	response, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// createScene resolves a builtin scene, a discovered scene file ID or a scene file path
func createScene(name string) (*scene.Scene, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: empty scene name", core.ErrUnknownScene)
	}
	return scene.Load(name, scene.FindScenesDir())
}

// renderOnce loads, renders and saves the scene, returning the written path
func renderOnce(ctx context.Context, opts options, now time.Time) (string, error) {
	s, err := createScene(opts.scene)
	if err != nil {
		return "", err
	}

	width, height := s.Width, s.Height
	if opts.width > 0 {
		width = opts.width
	}
	if opts.height > 0 {
		height = opts.height
	}
	if err := s.SetImageSize(width, height); err != nil {
		return "", err
	}
	if opts.workers > 0 {
		s.Settings.Workers = opts.workers
	}

	rt, err := renderer.NewRaytracer(s)
	if err != nil {
		return "", err
	}
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return "", err
	}

	path := opts.output
	if path == "" {
		path = defaultOutputPath(opts.scene, now)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := loaders.SaveImage(path, img.Pixels); err != nil {
		return "", err
	}

	core.LogInfo("render saved", "file", path, "duration", stats.Duration.Round(time.Millisecond),
		"samples_per_pixel", fmt.Sprintf("%.1f", stats.SamplesPerPixel()), "rays", stats.Rays)
	return path, nil
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneSlug(sceneName), fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// sceneSlug turns a scene name, file ID or path into a directory name
func sceneSlug(name string) string {
	name = strings.TrimPrefix(name, "file:")
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." {
		return "scene"
	}
	return strings.ToLower(name)
}

// scenePath returns the file backing a scene argument, or "" for builtins
func scenePath(name string) string {
	if _, err := scene.NewBuiltin(name); err == nil {
		return ""
	}
	if id, ok := strings.CutPrefix(name, "file:"); ok {
		files, err := scene.ListSceneFiles(scene.FindScenesDir())
		if err != nil {
			return ""
		}
		for _, f := range files {
			if f.ID == "file:"+id {
				return f.FilePath
			}
		}
		return ""
	}
	return name
}

// watchScene re-renders whenever the scene file is written. The parent directory
// is watched so editors that replace the file on save are still seen.
func watchScene(ctx context.Context, opts options) error {
	path := scenePath(opts.scene)
	if path == "" {
		return fmt.Errorf("-watch needs a scene file, %q is builtin", opts.scene)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	core.LogInfo("watching scene file", "file", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isSceneChange(event, abs) {
				continue
			}
			core.LogDebug("scene file changed", "op", event.Op.String())
			pending = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			core.LogWarn("watcher error", "err", err)
		case <-pending:
			pending = nil
			if _, err := renderOnce(ctx, opts, time.Now()); err != nil {
				core.LogError("render failed", "scene", opts.scene, "err", err)
			}
		}
	}
}

func isSceneChange(event fsnotify.Event, path string) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}
