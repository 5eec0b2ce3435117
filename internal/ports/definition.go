package ports

import "time"

// Definition is the serializable description of one fuzzy engine: its
// variables, rules in the textual rule language, and defuzzification
// strategy. It is what definition files and the store hold; the app layer
// turns it into a *fuzzy.Engine.
type Definition struct {
	Name     string         `yaml:"name" json:"name"`
	Strategy string         `yaml:"strategy" json:"strategy"`                   // "centroid" or "mom"
	Workers  int            `yaml:"workers,omitempty" json:"workers,omitempty"` // 0 or 1 = serial
	Inputs   []VariableSpec `yaml:"inputs" json:"inputs"`
	Outputs  []VariableSpec `yaml:"outputs" json:"outputs"`
	Rules    []string       `yaml:"rules" json:"rules"`
}

// VariableSpec describes a linguistic variable over the integer domain [Start, End).
type VariableSpec struct {
	Name  string     `yaml:"name" json:"name"`
	Start int        `yaml:"start" json:"start"`
	End   int        `yaml:"end" json:"end"`
	Terms []TermSpec `yaml:"terms" json:"terms"`
}

// TermSpec describes one membership function.
// Shape is "triangle" (3 params), "trapezoid" (4), "up" (2), or "down" (2).
type TermSpec struct {
	Name   string    `yaml:"name" json:"name"`
	Shape  string    `yaml:"shape" json:"shape"`
	Params []float64 `yaml:"params,flow" json:"params"`
}

// EvaluationRecord is one entry of a definition's evaluation history.
// Failed evaluations are recorded too, with Error set and Output undefined.
type EvaluationRecord struct {
	ID         string             `json:"id"`
	Definition string             `json:"definition"`
	Inputs     map[string]float64 `json:"inputs"`
	Output     float64            `json:"output"`
	Error      string             `json:"error,omitempty"`
	At         time.Time          `json:"at"`
}
