package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// BuiltInGroup is the group name of scenes compiled into the binary
const BuiltInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`                 // Unique identifier
	DisplayName string `json:"displayName"`        // UI display name
	Description string `json:"description"`        // Optional description
	Group       string `json:"group"`              // Grouping category
	Type        string `json:"type"`               // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"` // Path to JSON file (file type only)
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

type builtIn struct {
	info   SceneInfo
	create func() *Scene
}

var builtIns = []builtIn{
	{
		info:   SceneInfo{ID: "default", DisplayName: "Default Scene", Description: "Diffuse, hollow glass and fuzzed gold spheres on a ground sphere"},
		create: NewDefaultScene,
	},
	{
		info:   SceneInfo{ID: "ground", DisplayName: "Ground", Description: "A single diffuse sphere resting on a ground sphere"},
		create: NewGroundScene,
	},
	{
		info:   SceneInfo{ID: "final", DisplayName: "Final Render", Description: "Field of random small spheres around three large ones"},
		create: func() *Scene { return NewFinalScene(FinalSceneSeed) },
	},
	{
		info:   SceneInfo{ID: "metals", DisplayName: "Metal Grid", Description: "10x10 grid of colored metal spheres with increasing fuzz"},
		create: NewMetalsScene,
	},
	{
		info:   SceneInfo{ID: "glass", DisplayName: "Glass", Description: "Spheres of increasing refraction index in front of a backdrop"},
		create: NewGlassScene,
	},
}

// Names returns the IDs of the built-in scenes in registration order
func Names() []string {
	names := make([]string, len(builtIns))
	for i, b := range builtIns {
		names[i] = b.info.ID
	}
	return names
}

// Create builds the built-in scene with the given ID
func Create(name string) (*Scene, error) {
	for _, b := range builtIns {
		if b.info.ID == name {
			return b.create(), nil
		}
	}
	return nil, fmt.Errorf("%q (available: %s): %w", name, strings.Join(Names(), ", "), ErrUnknownScene)
}

// BuiltInScenes returns metadata for every built-in scene
func BuiltInScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtIns))
	for i, b := range builtIns {
		info := b.info
		info.Group = BuiltInGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}

// ListFileScenes scans dir for *.json scene files and returns their metadata.
// Files whose header cannot be read are skipped.
func ListFileScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		// No scenes directory, nothing to list
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the name, description and group of a scene file
// without building its world
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	info := SceneInfo{
		ID:          "file:" + nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("scene %q: %w", filePath, err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, fmt.Errorf("scene %q: %w", filePath, err)
	}

	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	if header.Group != "" {
		info.Group = header.Group
	}

	return info, nil
}

// ListAllScenes returns built-in and file scenes, grouped by category with
// the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListFileScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(BuiltInScenes(), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, info := range allScenes {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != BuiltInGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{
		Name:   BuiltInGroup,
		Scenes: groupMap[BuiltInGroup],
	})
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// Load resolves an ID from ListAllScenes: a built-in name, or "file:<name>"
// looked up in dir
func Load(id, dir string) (*Scene, error) {
	if name, ok := strings.CutPrefix(id, "file:"); ok {
		if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
			return nil, fmt.Errorf("%q: %w", id, ErrUnknownScene)
		}
		return LoadFile(filepath.Join(dir, name+".json"))
	}
	return Create(id)
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}
