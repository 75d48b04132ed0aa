package config

import (
	"encoding/json"
	"evilboard/src/base"
	"evilboard/src/logic/convert/convfen"
	"strings"

	"gopkg.in/yaml.v3"
)

// StartPosition is the configured initial board: nothing, "start", compact
// notation, or a square to piece-code object.
type StartPosition struct {
	Raw    string
	Object map[string]string
}

func PositionFromString(s string) StartPosition { return StartPosition{Raw: s} }

func PositionOf(pos base.Position) StartPosition { return StartPosition{Object: pos.Object()} }

func (sp StartPosition) IsSet() bool { return sp.Raw != "" || sp.Object != nil }

// Resolve returns the empty position when nothing was configured.
func (sp StartPosition) Resolve() (base.Position, error) {
	if sp.Object != nil {
		return base.ParsePosition(sp.Object)
	}
	raw := strings.TrimSpace(sp.Raw)
	switch {
	case raw == "":
		return base.Position{}, nil
	case strings.EqualFold(raw, "start"):
		return convfen.StartPosition(), nil
	}
	return convfen.ConvertFENToPosition(raw)
}

func (sp *StartPosition) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*sp = StartPosition{Raw: str}
		return nil
	}
	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err != nil {
		return &base.ValidationError{Kind: "config.position", Value: string(data), Reason: "want a string or a square to piece object"}
	}
	if obj == nil {
		obj = map[string]string{}
	}
	*sp = StartPosition{Object: obj}
	return nil
}

func (sp StartPosition) MarshalJSON() ([]byte, error) {
	if sp.Object != nil {
		return json.Marshal(sp.Object)
	}
	return json.Marshal(sp.Raw)
}

func (sp *StartPosition) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*sp = StartPosition{Raw: value.Value}
		return nil
	case yaml.MappingNode:
		obj := map[string]string{}
		if err := value.Decode(&obj); err != nil {
			return err
		}
		*sp = StartPosition{Object: obj}
		return nil
	}
	return &base.ValidationError{Kind: "config.position", Value: value.Tag, Reason: "want a string or a square to piece mapping"}
}

func (sp StartPosition) MarshalYAML() (interface{}, error) {
	if sp.Object != nil {
		return sp.Object, nil
	}
	return sp.Raw, nil
}

// Decode implements envconfig.Decoder; only the string forms are accepted.
func (sp *StartPosition) Decode(value string) error {
	*sp = StartPosition{Raw: value}
	return nil
}
