// Package metrics exposes a tree's operation counters as Prometheus metrics.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/AlonMell/ordtree/internal/rbtree"
)

const namespace = "ordtree"

// Collector reads rbtree.Stats on every scrape. Gather must not run
// concurrently with mutations of the tree.
type Collector struct {
	tree *rbtree.Tree

	nodes     *prometheus.Desc
	height    *prometheus.Desc
	ops       *prometheus.Desc
	rotations *prometheus.Desc
	fixups    *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector returns a collector over tree.
func NewCollector(tree *rbtree.Tree) *Collector {
	return &Collector{
		tree: tree,
		nodes: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "nodes"),
			"Number of keys held by the tree.",
			nil, nil,
		),
		height: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "height"),
			"Nodes on the longest root-to-leaf path.",
			nil, nil,
		),
		ops: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "operations_total"),
			"Tree operations by outcome.",
			[]string{"op"}, nil,
		),
		rotations: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "rotations_total"),
			"Rotations performed while rebalancing.",
			[]string{"dir"}, nil,
		),
		fixups: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "fixup_cases_total"),
			"Fixup steps taken, by fixup and structural case.",
			[]string{"fixup", "case"}, nil,
		),
	}
}

// NewRegistry returns a private registry with a collector over tree
// registered on it.
func NewRegistry(tree *rbtree.Tree) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewCollector(tree))
	return reg
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.nodes
	ch <- c.height
	ch <- c.ops
	ch <- c.rotations
	ch <- c.fixups
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.tree.Stats()

	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(c.tree.Len()))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(c.tree.Height()))

	for op, v := range map[string]uint64{
		"insert":         s.Inserts,
		"insert_dup":     s.Duplicates,
		"insert_refused": s.AllocFailures,
		"remove":         s.Removes,
		"remove_miss":    s.RemoveMisses,
	} {
		ch <- prometheus.MustNewConstMetric(c.ops, prometheus.CounterValue, float64(v), op)
	}

	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(s.LeftRotations), "left")
	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(s.RightRotations), "right")

	for _, ic := range rbtree.InsertCases() {
		ch <- prometheus.MustNewConstMetric(c.fixups, prometheus.CounterValue, float64(s.InsertFixups[ic]), "insert", ic.String())
	}
	for _, dc := range rbtree.DeleteCases() {
		ch <- prometheus.MustNewConstMetric(c.fixups, prometheus.CounterValue, float64(s.DeleteFixups[dc]), "delete", dc.String())
	}
}

// Write gathers from g and prints one "name{labels} value" line per sample,
// sorted by name then labels.
func Write(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			lines = append(lines, mf.GetName()+labels(m)+" "+strconv.FormatFloat(value(m), 'f', -1, 64))
		}
	}
	sort.Strings(lines)

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func value(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetUntyped() != nil:
		return m.GetUntyped().GetValue()
	}
	return 0
}
