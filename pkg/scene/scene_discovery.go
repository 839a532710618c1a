package scene

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-raycaster/pkg/core"
	"github.com/df07/go-raycaster/pkg/geometry"
)

// SceneInfo describes a built-in or file scene
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to YAML file (file type only)
}

// FileScenePrefix marks scene IDs that refer to a YAML file
const FileScenePrefix = "file:"

// Constructor builds a scene, applying an optional camera override
type Constructor func(cameraOverrides ...geometry.CameraConfig) (*Scene, error)

type builtin struct {
	info   SceneInfo
	create Constructor
}

var builtins = map[string]builtin{
	"default": {
		info: SceneInfo{
			ID:          "default",
			Type:        "builtin",
			DisplayName: "Default",
			Description: "Five spheres in front of a back wall, one light",
		},
		create: NewDefaultScene,
	},
	"single-sphere": {
		info: SceneInfo{
			ID:          "single-sphere",
			Type:        "builtin",
			DisplayName: "Single Sphere",
			Description: "One red sphere lit from the upper left",
		},
		create: NewSingleSphereScene,
	},
	"empty": {
		info: SceneInfo{
			ID:          "empty",
			Type:        "builtin",
			DisplayName: "Empty",
			Description: "Camera only; renders black",
		},
		create: NewEmptyScene,
	},
}

// ListBuiltinScenes returns every built-in scene sorted by ID
func ListBuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, 0, len(builtins))
	for _, b := range builtins {
		infos = append(infos, b.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// IsBuiltin reports whether id names a built-in scene
func IsBuiltin(id string) bool {
	_, ok := builtins[id]
	return ok
}

// CreateBuiltin builds the built-in scene with the given ID
func CreateBuiltin(id string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	b, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q: %w", id, core.ErrConfiguration)
	}
	return b.create(cameraOverrides...)
}

// ListFileScenes scans dir for YAML scene files and reads their metadata.
// A missing directory yields an empty list. Files whose metadata cannot be
// read are skipped; their errors are joined into the returned error
// alongside the scenes that were read.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	var skipped []error
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s: %w", filePath, err))
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, errors.Join(skipped...)
}

// ParseSceneMetadata reads the leading comment block of a scene file.
// "# Scene:" sets the display name and "# Description:" the description;
// any other leading comment line becomes the description if none is set.
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          FileScenePrefix + base,
		DisplayName: titleCase(base),
		Type:        "file",
		FilePath:    filePath,
	}

	file, err := os.Open(filePath)
	if err != nil {
		return SceneInfo{}, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "#") {
			break
		}
		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))

		switch {
		case strings.HasPrefix(content, "Scene:"):
			info.DisplayName = strings.TrimSpace(strings.TrimPrefix(content, "Scene:"))
		case strings.HasPrefix(content, "Description:"):
			info.Description = strings.TrimSpace(strings.TrimPrefix(content, "Description:"))
		case info.Description == "" && content != "":
			info.Description = content
		}
	}
	return info, scanner.Err()
}

// titleCase converts a filename-style string to title case
// e.g., "seeded-grid" -> "Seeded Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
