// Package validate checks generated dashboards and rule files: every
// PromQL expression must parse and reference only known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/auction-browser/tools/dashgen/rules"
)

// Histogram series suffixes resolved back to their base metric name.
var histogramSuffixes = []string{"_bucket", "_sum", "_count"}

// Result collects validation findings. Errors fail generation; warnings
// are reported but do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether no errors were found.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// panelJSON is the subset of the dashboard model the validator walks.
// Rows carry their children in Panels.
type panelJSON struct {
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Targets     []targetRaw `json:"targets"`
	Panels      []panelJSON `json:"panels"`
}

type targetRaw struct {
	Expr  string `json:"expr"`
	RefID string `json:"refId"`
}

// Dashboard validates every query target of dash against known.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var doc struct {
		Panels []panelJSON `json:"panels"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	for i := range doc.Panels {
		res.merge(panel(doc.Panels[i], known))
	}
	return res
}

func panel(p panelJSON, known map[string]bool) Result {
	var res Result

	if p.Type == "row" {
		for i := range p.Panels {
			res.merge(panel(p.Panels[i], known))
		}
		return res
	}

	if p.Description == "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no description", p.Title))
	}
	if len(p.Targets) == 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("panel %q has no targets", p.Title))
	}
	for _, t := range p.Targets {
		where := fmt.Sprintf("panel %q target %s", p.Title, t.RefID)
		res.merge(Expr(where, t.Expr, known))
	}
	return res
}

// Rules validates every expression of a PrometheusRule against known.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			res.merge(Expr(fmt.Sprintf("rule %s/%s", g.Name, r.Name()), r.Expr, known))
		}
	}
	return res
}

// Expr parses a single PromQL expression and checks the metric names it selects.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	if strings.TrimSpace(expr) == "" {
		res.Errors = append(res.Errors, where+": empty expression")
		return res
	}

	node, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: %v", where, err))
		return res
	}

	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok || vs.Name == "" {
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, vs.Name))
		}
		return nil
	})
	return res
}

func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
