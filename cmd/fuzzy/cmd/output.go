package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/corey/fuzzy/internal/domain/fuzzy"
	"github.com/corey/fuzzy/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset   = "\033[0m"
	colorBold    = "\033[1m"
	colorCyan    = "\033[36m"
	colorMagenta = "\033[35m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorRed     = "\033[31m"
	colorGray    = "\033[90m"
)

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatInputs renders inputs as name=value pairs sorted by name.
func formatInputs(inputs map[string]float64) string {
	names := make([]string, 0, len(inputs))
	for n := range inputs {
		names = append(names, n)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + "=" + formatValue(inputs[n])
	}
	return strings.Join(parts, " ")
}

// formatCheck summarizes a definition and the engine built from it.
//
//	⚡ hvac │ centroid │ 4 rules │ domain [0, 10)
//	  in   temp [0, 100)  cold warm hot
//	  out  fan [0, 10)  slow fast
func formatCheck(def *ports.Definition, e *fuzzy.Engine) string {
	var sb strings.Builder

	strategy := def.Strategy
	if strategy == "" {
		strategy = colorYellow + "no strategy" + colorReset
	}
	dom := e.Domain()
	sb.WriteString(fmt.Sprintf("%s⚡ %s%s │ %s │ %d rules │ domain [%d, %d)\n",
		colorBold, def.Name, colorReset, strategy, len(e.Rules()), dom.Start, dom.End))

	writeVars := func(label string, specs []ports.VariableSpec) {
		for _, v := range specs {
			sb.WriteString(fmt.Sprintf("  %s%-4s%s %s%s%s [%d, %d) ",
				colorGray, label, colorReset, colorCyan, v.Name, colorReset, v.Start, v.End))
			for _, t := range v.Terms {
				sb.WriteString(fmt.Sprintf(" %s%s%s", colorMagenta, t.Name, colorReset))
			}
			sb.WriteString("\n")
		}
	}
	writeVars("in", def.Inputs)
	writeVars("out", def.Outputs)
	return sb.String()
}

// formatHistory renders evaluation records newest first.
func formatHistory(name string, recs []ports.EvaluationRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s⚡ %s │ %d evaluations%s\n", colorBold, name, len(recs), colorReset))
	for _, r := range recs {
		sb.WriteString(fmt.Sprintf("  %s%s%s  %s  ",
			colorGray, r.At.Local().Format("2006-01-02 15:04:05"), colorReset, formatInputs(r.Inputs)))
		if r.Error != "" {
			sb.WriteString(fmt.Sprintf("%s%s%s\n", colorRed, r.Error, colorReset))
			continue
		}
		sb.WriteString(fmt.Sprintf("→ %s%s%s\n", colorGreen, formatValue(r.Output), colorReset))
	}
	return sb.String()
}
