package gconf

import (
	"encoding/json"
	"fmt"
	"os"
)

const DefaultFile = "evilboard-gui.json"

type Config struct {
	Theme    string `json:"theme"`     // light/dark
	PieceDir string `json:"piece_dir"` // directory the piece theme is resolved against
	Board    string `json:"board"`     // path to the board config (.json/.yaml)
	Legal    bool   `json:"legal"`     // veto illegal drags
	WindowH  int    `json:"window_h"`  //
	WindowW  int    `json:"window_w"`  //
	Debug    bool   `json:"debug"`     // true/false

	file string
}

func defaultConfig() Config {
	return Config{
		Theme:    "light",
		PieceDir: "assets",
		WindowH:  760,
		WindowW:  640,
	}
}

// NewGUIConfig reads file, or returns the defaults when it does not exist.
// An empty file name means DefaultFile.
func NewGUIConfig(file string) (*Config, error) {
	if file == "" {
		file = DefaultFile
	}

	_, err := os.Stat(file)
	if os.IsNotExist(err) {
		def := defaultConfig()
		def.file = file
		return &def, nil
	} else if err != nil {
		return nil, err
	}

	conf, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer conf.Close()

	dec := json.NewDecoder(conf)
	var c Config
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("error decode config: %s", err)
	}
	correctableConfig(&c)
	c.file = file

	return &c, nil
}

func (c *Config) Save() error {
	file := c.file
	if file == "" {
		file = DefaultFile
	}
	jsonData, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}
	err = os.WriteFile(file, jsonData, 0644)
	if err != nil {
		return err
	}
	return nil
}

func correctableConfig(c *Config) {
	def := defaultConfig()
	if c.Theme == "" || (c.Theme != "light" && c.Theme != "dark") {
		c.Theme = def.Theme
	}
	if c.PieceDir == "" {
		c.PieceDir = def.PieceDir
	}
	if c.WindowH < 200 || c.WindowW < 200 {
		c.WindowH = def.WindowH
		c.WindowW = def.WindowW
	}
}
