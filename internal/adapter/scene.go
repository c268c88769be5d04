package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	m "github.com/mouse-blink/ecslua/internal/model"
)

// ComponentFactory returns a pointer to a fresh component value for a
// registered type name.
type ComponentFactory func(name string) (reflect.Value, bool)

// SceneStore finds, reads and writes scene files.
type SceneStore interface {
	// Find expands scene roots into scene files. A root ending in /...
	// is searched recursively; an empty root names the default scene.
	Find(roots []m.Path) ([]m.Path, error)

	// Load reads the scene at path. An empty path yields the default scene:
	// one entity carrying a default Transform.
	Load(path m.Path, factory ComponentFactory) (*World, error)

	// Save writes records as a scene file that Load can read back.
	Save(path m.Path, records []m.RecordDump) error
}

// sceneYAML is the on-disk scene layout:
//
//	entities:
//	  - Transform:
//	      translation: {x: 1, y: 2, z: 3}
//	    Name: {value: player}
type sceneYAML struct {
	Entities []map[string]yaml.Node `yaml:"entities"`
}

// LocalSceneStore reads and writes YAML scenes on disk.
type LocalSceneStore struct{}

// NewLocalSceneStore constructs a LocalSceneStore.
func NewLocalSceneStore() *LocalSceneStore {
	return &LocalSceneStore{}
}

// Load reads and decodes the scene file at path.
func (l *LocalSceneStore) Load(path m.Path, factory ComponentFactory) (*World, error) {
	if path == "" {
		return defaultScene(factory)
	}

	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}

	world, err := DecodeScene(data, factory)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	return world, nil
}

// DecodeScene builds a World from YAML scene data.
func DecodeScene(data []byte, factory ComponentFactory) (*World, error) {
	var scene sceneYAML
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	world := NewWorld()

	for i, entity := range scene.Entities {
		names := make([]string, 0, len(entity))
		for name := range entity {
			names = append(names, name)
		}

		sort.Strings(names)

		components := make([]any, 0, len(names))

		for _, name := range names {
			value, ok := factory(name)
			if !ok {
				return nil, fmt.Errorf("entity %d: unknown component %q", i, name)
			}

			node := entity[name]
			if err := node.Decode(value.Interface()); err != nil {
				return nil, fmt.Errorf("entity %d: component %s: %w", i, name, err)
			}

			components = append(components, value.Elem().Interface())
		}

		world.Spawn(components...)
	}

	return world, nil
}

// Save encodes records and writes them to path, creating parent directories.
func (l *LocalSceneStore) Save(path m.Path, records []m.RecordDump) error {
	data, err := EncodeScene(records)
	if err != nil {
		return fmt.Errorf("scene %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene %s: %w", path, err)
	}

	return nil
}

// EncodeScene renders records in the scene layout. Records of one entity
// must be adjacent, as World.Snapshot returns them. Entity handles are not
// kept: reloading numbers the entities from zero.
func EncodeScene(records []m.RecordDump) ([]byte, error) {
	scene := struct {
		Entities []map[string]any `yaml:"entities"`
	}{}

	for i, record := range records {
		if i == 0 || records[i-1].Entity != record.Entity {
			scene.Entities = append(scene.Entities, make(map[string]any))
		}

		scene.Entities[len(scene.Entities)-1][record.Type] = record.Value
	}

	data, err := yaml.Marshal(scene)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scene: %w", err)
	}

	return data, nil
}

// SceneName derives a display name from a scene path.
func SceneName(path m.Path) string {
	if path == "" {
		return "default"
	}

	base := filepath.Base(string(path))

	return strings.TrimSuffix(base, filepath.Ext(base))
}

func defaultScene(factory ComponentFactory) (*World, error) {
	transform, ok := factory("Transform")
	if !ok {
		return nil, fmt.Errorf("default scene needs a registered Transform component")
	}

	world := NewWorld()
	world.Spawn(transform.Elem().Interface())

	return world, nil
}
