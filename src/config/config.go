package config

import (
	"encoding/json"
	"evilboard/src/base"
	"evilboard/src/diag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override: EVILBOARD_ORIENTATION, ...
const EnvPrefix = "EVILBOARD"

const (
	DropSnapback = "snapback"
	DropTrash    = "trash"

	DefaultDragThrottleRate = 20
	DefaultPieceTheme       = "img/{piece}.png"
)

type Config struct {
	Position         StartPosition `json:"position" yaml:"position" envconfig:"POSITION"`
	Orientation      string        `json:"orientation" yaml:"orientation" envconfig:"ORIENTATION"`          // white/black
	ShowNotation     bool          `json:"show_notation" yaml:"show_notation" envconfig:"SHOW_NOTATION"`    //
	Draggable        bool          `json:"draggable" yaml:"draggable" envconfig:"DRAGGABLE"`                //
	SparePieces      bool          `json:"spare_pieces" yaml:"spare_pieces" envconfig:"SPARE_PIECES"`       // forces draggable
	DropOffBoard     string        `json:"drop_off_board" yaml:"drop_off_board" envconfig:"DROP_OFF_BOARD"` // snapback/trash
	AppearSpeed      Speed         `json:"appear_speed" yaml:"appear_speed" envconfig:"APPEAR_SPEED"`
	MoveSpeed        Speed         `json:"move_speed" yaml:"move_speed" envconfig:"MOVE_SPEED"`
	SnapbackSpeed    Speed         `json:"snapback_speed" yaml:"snapback_speed" envconfig:"SNAPBACK_SPEED"`
	SnapSpeed        Speed         `json:"snap_speed" yaml:"snap_speed" envconfig:"SNAP_SPEED"`
	TrashSpeed       Speed         `json:"trash_speed" yaml:"trash_speed" envconfig:"TRASH_SPEED"`
	DragThrottleRate int           `json:"drag_throttle_rate" yaml:"drag_throttle_rate" envconfig:"DRAG_THROTTLE_RATE"` // ms, >= 1
	PieceTheme       string        `json:"piece_theme" yaml:"piece_theme" envconfig:"PIECE_THEME"`                      // must contain {piece}
	ShowErrors       string        `json:"show_errors" yaml:"show_errors" envconfig:"SHOW_ERRORS"`                      // console/silent

	// PieceThemeFunc wins over PieceTheme when set.
	PieceThemeFunc func(base.Piece) string `json:"-" yaml:"-" ignored:"true"`
}

func Default() Config {
	return Config{
		Orientation:      "white",
		ShowNotation:     true,
		DropOffBoard:     DropSnapback,
		AppearSpeed:      200,
		MoveSpeed:        200,
		SnapbackSpeed:    60,
		SnapSpeed:        30,
		TrashSpeed:       100,
		DragThrottleRate: DefaultDragThrottleRate,
		PieceTheme:       DefaultPieceTheme,
		ShowErrors:       "console",
	}
}

// Load reads a .json or .yaml file over the defaults, then applies
// environment overrides. An empty path means defaults plus environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			if err := yaml.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("error decode config: %w", err)
			}
		default:
			if err := json.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("error decode config: %w", err)
			}
		}
	}
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("error read environment: %w", err)
	}
	return &c, nil
}

// Correct replaces unusable values with defaults, reporting each one.
func (c *Config) Correct(r diag.Reporter) {
	if r == nil {
		r = diag.Silent()
	}
	def := Default()
	fix := func(field string, value any) {
		r.Report(diag.CodeInvalidConfig, "invalid value for config."+field+", using default", value)
	}

	if c.Orientation != "black" {
		if c.Orientation != "white" && c.Orientation != "" {
			fix("orientation", c.Orientation)
		}
		c.Orientation = "white"
	}
	if c.DropOffBoard != DropTrash {
		if c.DropOffBoard != DropSnapback && c.DropOffBoard != "" {
			fix("drop_off_board", c.DropOffBoard)
		}
		c.DropOffBoard = DropSnapback
	}
	if c.SparePieces {
		c.Draggable = true
	}
	speeds := []struct {
		name string
		v    *Speed
		d    Speed
	}{
		{"appear_speed", &c.AppearSpeed, def.AppearSpeed},
		{"move_speed", &c.MoveSpeed, def.MoveSpeed},
		{"snapback_speed", &c.SnapbackSpeed, def.SnapbackSpeed},
		{"snap_speed", &c.SnapSpeed, def.SnapSpeed},
		{"trash_speed", &c.TrashSpeed, def.TrashSpeed},
	}
	for _, s := range speeds {
		if !s.v.Valid() {
			fix(s.name, int(*s.v))
			*s.v = s.d
		}
	}
	if c.DragThrottleRate < 1 {
		fix("drag_throttle_rate", c.DragThrottleRate)
		c.DragThrottleRate = def.DragThrottleRate
	}
	if c.PieceTheme == "" {
		c.PieceTheme = def.PieceTheme
	}
	if c.ShowErrors != "silent" {
		c.ShowErrors = def.ShowErrors
	}
}

// Validate reports settings no default can repair.
func (c *Config) Validate() error {
	if c.PieceThemeFunc == nil && !strings.Contains(c.PieceTheme, "{piece}") {
		return &base.ConfigurationError{Field: "piece_theme", Reason: "template must contain {piece}"}
	}
	return nil
}

func (c Config) OrientationValue() base.Orientation {
	if c.Orientation == "black" {
		return base.OrientBlack
	}
	return base.OrientWhite
}

// PieceImage resolves the image reference for p.
func (c Config) PieceImage(p base.Piece) string {
	if c.PieceThemeFunc != nil {
		return c.PieceThemeFunc(p)
	}
	return strings.ReplaceAll(c.PieceTheme, "{piece}", p.Code())
}

func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "    ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
