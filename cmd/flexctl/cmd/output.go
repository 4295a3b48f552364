package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// printer writes results in the format chosen with --output
type printer struct {
	format string
	out    io.Writer
}

func (p *printer) structured() bool {
	return p.format == "json" || p.format == "yaml"
}

// encode writes v as JSON or YAML. YAML keys follow the JSON field names.
func (p *printer) encode(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if p.format == "json" {
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	}

	// JSON is valid YAML; decoding into a node keeps the field order.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	blockStyle(&node)
	encoder := yaml.NewEncoder(p.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return encoder.Close()
}

// blockStyle drops the flow style inherited from JSON so mappings and
// sequences render as ordinary YAML blocks.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style = 0
	}
	if n.Kind == yaml.ScalarNode && n.Style == yaml.DoubleQuotedStyle {
		n.Style = 0
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func (p *printer) table(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(p.out)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	table.Header(cells...)
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func (p *printer) properties(rows [][]string) error {
	return p.table([]string{"Property", "Value"}, rows)
}

func (p *printer) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

func (p *printer) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}
