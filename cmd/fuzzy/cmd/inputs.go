package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// parseInputs turns name=value arguments into crisp inputs.
func parseInputs(args []string) (map[string]float64, error) {
	inputs := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("input %q: want name=value", arg)
		}
		if _, dup := inputs[name]; dup {
			return nil, fmt.Errorf("input %q given twice", name)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("input %q: %w", name, err)
		}
		inputs[name] = v
	}
	return inputs, nil
}
