package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
)

const (
	builtinGroup   = "Built-in Scenes"
	sceneFileGroup = "Scene Files"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, the builtin name or "file:<name>"
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to scene file (file type only)
	Format      string `json:"format"`      // "toml" or "json" (file type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// FindScenesDir returns the first existing scenes directory among the usual locations, or ""
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListSceneFiles scans dir for .toml and .json scene files. An empty dir means FindScenesDir.
func ListSceneFiles(dir string) ([]SceneInfo, error) {
	if dir == "" {
		dir = FindScenesDir()
	}
	if dir == "" {
		return []SceneInfo{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := loaders.FormatFromPath(path); err != nil {
			continue
		}
		info, err := ReadSceneMetadata(path)
		if err != nil {
			// Keep listing the other files
			core.LogWarn("failed to read scene metadata", "file", path, "err", err)
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ReadSceneMetadata extracts name and description from a scene file.
// On error the returned info still carries fallback values derived from the file name.
func ReadSceneMetadata(path string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	format, _ := loaders.FormatFromPath(path)

	info := SceneInfo{
		ID:          "file:" + base,
		Name:        titleCase(base),
		DisplayName: titleCase(base),
		Group:       sceneFileGroup,
		Type:        "file",
		FilePath:    path,
		Format:      string(format),
	}

	cfg, err := loaders.LoadSceneConfig(path)
	if err != nil {
		return info, err
	}
	if cfg.Name != "" && cfg.Name != base {
		info.Name = cfg.Name
		info.DisplayName = cfg.Name
	}
	info.Description = cfg.Description
	return info, nil
}

// ListAllScenes returns built-in scenes followed by scene files from dir
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	var builtinScenes []SceneInfo
	for _, b := range Builtins() {
		builtinScenes = append(builtinScenes, SceneInfo{
			ID:          b.Name,
			Name:        b.Name,
			DisplayName: titleCase(b.Name),
			Description: b.Description,
			Group:       builtinGroup,
			Type:        "builtin",
		})
	}
	response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: builtinScenes})

	files, err := ListSceneFiles(dir)
	if err != nil {
		return response, err
	}
	if len(files) > 0 {
		response.Groups = append(response.Groups, SceneGroup{Name: sceneFileGroup, Scenes: files})
	}

	return response, nil
}

// Load resolves a scene by builtin name, "file:<name>" ID or file path
func Load(nameOrPath, dir string) (*Scene, error) {
	if b, err := NewBuiltin(nameOrPath); err == nil {
		return b, nil
	}

	path := nameOrPath
	if id, ok := strings.CutPrefix(nameOrPath, "file:"); ok {
		files, err := ListSceneFiles(dir)
		if err != nil {
			return nil, err
		}
		path = ""
		for _, f := range files {
			if f.ID == "file:"+id {
				path = f.FilePath
				break
			}
		}
		if path == "" {
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownScene, nameOrPath)
		}
	}

	if _, err := loaders.FormatFromPath(path); err != nil {
		return nil, fmt.Errorf("%w: %q is neither a builtin scene nor a scene file", core.ErrUnknownScene, nameOrPath)
	}
	cfg, err := loaders.LoadSceneConfig(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// titleCase converts a filename-style string to title case
// e.g., "two-mirrors" -> "Two Mirrors"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
