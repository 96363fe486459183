package core

import (
	"log/slog"
	"strconv"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeBool denotes boolean parameters.
	ParamTypeBool ParamType = "bool"
	// ParamTypeString denotes free-form parameters such as names and paths.
	ParamTypeString ParamType = "string"
)

// Parameter describes a single fixed setting of a search run.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// Attr returns p as a slog attribute of its declared type. Values that do
// not parse as their type are logged as strings.
func (p Parameter) Attr() slog.Attr {
	switch p.Type {
	case ParamTypeInt:
		if v, err := strconv.Atoi(p.Value); err == nil {
			return slog.Int(p.Key, v)
		}
	case ParamTypeBool:
		if v, err := strconv.ParseBool(p.Value); err == nil {
			return slog.Bool(p.Key, v)
		}
	}
	return slog.String(p.Key, p.Value)
}

// Display formats the value for the HUD; booleans read as on/off.
func (p Parameter) Display() string {
	if p.Type == ParamTypeBool {
		if v, err := strconv.ParseBool(p.Value); err == nil {
			if v {
				return "on"
			}
			return "off"
		}
	}
	return p.Value
}

// ParameterGroup clusters related parameters for presentation purposes.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot captures the settings of a run for logs and the viewer HUD.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// LogAttrs flattens the snapshot into one slog group per parameter group.
func (s ParameterSnapshot) LogAttrs() []any {
	attrs := make([]any, 0, len(s.Groups))
	for _, g := range s.Groups {
		inner := make([]any, 0, len(g.Params))
		for _, p := range g.Params {
			inner = append(inner, p.Attr())
		}
		attrs = append(attrs, slog.Group(g.Name, inner...))
	}
	return attrs
}

// Lookup returns the value stored under key.
func (s ParameterSnapshot) Lookup(key string) (string, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p.Value, true
			}
		}
	}
	return "", false
}
