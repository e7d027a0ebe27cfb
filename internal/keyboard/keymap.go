// Package keyboard drives the controller from terminal key presses.
package keyboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Alia5/serialpad/pad"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Keymap maps a single key to an input name understood by pad.ParseInput.
type Keymap map[string]string

// Bindings is a compiled Keymap.
type Bindings map[rune]pad.Input

func DefaultKeymap() Keymap {
	return Keymap{
		"w": "HAT_TOP",
		"a": "HAT_LEFT",
		"s": "HAT_BTM",
		"d": "HAT_RIGHT",
		"j": "A",
		"k": "B",
		"u": "X",
		"i": "Y",
		"1": "L",
		"2": "R",
		"3": "ZL",
		"4": "ZR",
		"-": "MINUS",
		"=": "PLUS",
		"h": "HOME",
		"c": "CAPTURE",
		"t": "UP",
		"g": "DOWN",
		"f": "LEFT",
		"b": "RIGHT",
		"o": "R_UP",
		"l": "R_DOWN",
		"p": "R_LEFT",
		";": "R_RIGHT",
	}
}

// LoadKeymap reads a keymap file. The format is picked by extension: .toml,
// .yaml/.yml, anything else is read as JSON. Entries in the file override
// the defaults.
func LoadKeymap(path string) (Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}

	var loaded map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		var tree *toml.Tree
		if tree, err = toml.LoadBytes(data); err == nil {
			loaded = tree.ToMap()
		}
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("parse keymap %s: %w", path, err)
	}

	km := DefaultKeymap()
	for k, v := range loaded {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("keymap %s: key %q must map to an input name", path, k)
		}
		km[k] = name
	}
	return km, nil
}

// Compile resolves every entry. Keys must be exactly one character; an empty
// input name unbinds the key.
func (k Keymap) Compile() (Bindings, error) {
	b := make(Bindings, len(k))
	for key, name := range k {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("keymap key %q must be a single character", key)
		}
		if name == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(key)
		in, err := pad.ParseInput(name)
		if err != nil {
			return nil, fmt.Errorf("keymap key %q: %w", key, err)
		}
		b[r] = in
	}
	return b, nil
}
