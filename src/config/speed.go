package config

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Speed is an animation duration in milliseconds. -1 marks a value that
// could not be read; Correct replaces it with the default.
type Speed int

const (
	SpeedFast    Speed = 200
	SpeedSlow    Speed = 600
	SpeedInvalid Speed = -1
)

func (s Speed) Valid() bool { return s >= 0 }

func (s Speed) Duration() time.Duration {
	if s < 0 {
		return 0
	}
	return time.Duration(s) * time.Millisecond
}

func parseSpeed(v string) Speed {
	v = strings.TrimSpace(v)
	switch v {
	case "fast":
		return SpeedFast
	case "slow":
		return SpeedSlow
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return SpeedInvalid
	}
	return Speed(n)
}

func (s *Speed) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = parseSpeed(str)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != float64(int(f)) || f < 0 {
		*s = SpeedInvalid
		return nil
	}
	*s = Speed(int(f))
	return nil
}

func (s Speed) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(s))
}

func (s *Speed) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		*s = SpeedInvalid
		return nil
	}
	*s = parseSpeed(value.Value)
	return nil
}

// Decode implements envconfig.Decoder.
func (s *Speed) Decode(value string) error {
	*s = parseSpeed(value)
	return nil
}
