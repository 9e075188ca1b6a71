// Package rules generates the Prometheus Operator rule resources for the
// auction browser metrics.
package rules

import "fmt"

// Selector labels the Prometheus instance uses to pick up these resources.
const ruleSelectorLabel = "system-rules-prometheus"

// Severity of an alert, copied into its labels.
type Severity string

// Severity values understood by the alert routing.
const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// PrometheusRule is the monitoring.coreos.com/v1 PrometheusRule resource.
type PrometheusRule struct {
	APIVersion string                 `yaml:"apiVersion"`
	Kind       string                 `yaml:"kind"`
	Metadata   PrometheusRuleMetadata `yaml:"metadata"`
	Spec       PrometheusRuleSpec     `yaml:"spec"`
}

// PrometheusRuleMetadata is the subset of object metadata the resources set.
type PrometheusRuleMetadata struct {
	Name   string            `yaml:"name"`
	Labels map[string]string `yaml:"labels,omitempty"`
}

// PrometheusRuleSpec holds the rule groups.
type PrometheusRuleSpec struct {
	Groups []RuleGroup `yaml:"groups"`
}

// RuleGroup is evaluated as a unit.
type RuleGroup struct {
	Name     string `yaml:"name"`
	Interval string `yaml:"interval,omitempty"`
	Rules    []Rule `yaml:"rules"`
}

// Rule is either a recording rule (Record set) or an alert (Alert set).
type Rule struct {
	Record      string            `yaml:"record,omitempty"`
	Alert       string            `yaml:"alert,omitempty"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for,omitempty"`
	Labels      map[string]string `yaml:"labels,omitempty"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}

// Name returns the record or alert name.
func (r Rule) Name() string {
	if r.Record != "" {
		return r.Record
	}
	return r.Alert
}

func newPrometheusRule(name string, groups ...RuleGroup) PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: name,
			Labels: map[string]string{
				"prometheus":                  ruleSelectorLabel,
				"app.kubernetes.io/part-of":   "auction-browser",
				"app.kubernetes.io/component": "monitoring",
			},
		},
		Spec: PrometheusRuleSpec{Groups: groups},
	}
}

// record builds a 5m rate recording rule named auction_browser:<what>:rate5m.
func record(what, expr string) Rule {
	return Rule{Record: fmt.Sprintf("auction_browser:%s:rate5m", what), Expr: expr}
}

// alert builds an alert rule. The name gets the AuctionBrowser prefix.
func alert(name string, sev Severity, expr, forDur, summary, description string) Rule {
	return Rule{
		Alert:  "AuctionBrowser" + name,
		Expr:   expr,
		For:    forDur,
		Labels: map[string]string{"severity": string(sev)},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
