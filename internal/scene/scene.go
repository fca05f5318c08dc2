package scene

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/fabricof/internal/core/viewport"
)

//go:embed data/fabricof.yaml
var defaultSceneYAML []byte

// Point is a position in cell units.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// CharacterData describes the character sprite in a scene file.
type CharacterData struct {
	Start Point    `yaml:"start"`
	Cells []string `yaml:"cells"`
}

// Data is the on-disk form of a scene.
type Data struct {
	Name       string        `yaml:"name"`
	Background []string      `yaml:"background"`
	Landscape  []string      `yaml:"landscape"`
	Character  CharacterData `yaml:"character"`
	Dialogue   []string      `yaml:"dialogue"`
}

// Scene is a loaded scene ready for compositing.
type Scene struct {
	Name       string
	Background Grid
	Landscape  Grid
	Character  Sprite
	Dialogue   []string
}

// Default returns the built-in scene.
func Default() (*Scene, error) {
	return Parse(defaultSceneYAML)
}

// Load reads a scene file. An empty path returns the built-in scene.
func Load(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates scene YAML.
func Parse(data []byte) (*Scene, error) {
	var d Data
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Scene{
		Name:       d.Name,
		Background: GridFromLines(d.Background),
		Landscape:  GridFromLines(d.Landscape),
		Character: Sprite{
			Cells: GridFromLines(d.Character.Cells),
			X:     d.Character.Start.X,
			Y:     d.Character.Start.Y,
		},
		Dialogue: d.Dialogue,
	}, nil
}

// Validate checks that the layers fit the logical grid.
func (d *Data) Validate() error {
	if err := checkLayer("background", d.Background); err != nil {
		return err
	}
	if err := checkLayer("landscape", d.Landscape); err != nil {
		return err
	}
	if len(d.Character.Cells) == 0 {
		return errors.New("character has no cells")
	}
	return nil
}

func checkLayer(name string, lines []string) error {
	if len(lines) > viewport.Rows {
		return fmt.Errorf("%s has %d rows, limit is %d", name, len(lines), viewport.Rows)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n > viewport.Cols {
			return fmt.Errorf("%s row %d has %d cells, limit is %d", name, i, n, viewport.Cols)
		}
	}
	return nil
}
