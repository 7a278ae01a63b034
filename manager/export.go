package manager

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/archonhq/archon/core"
)

// Export renders a processing result in the requested format. "json" yields
// the structured serialization, "markdown" a human-readable report. Unknown
// formats return ErrUnsupportedFormat.
func (m *Manager) Export(result *ProcessingResult, format string) (string, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("export: %w", err)
		}
		return string(data), nil
	case "markdown":
		return renderMarkdown(result), nil
	default:
		return "", fmt.Errorf("%q: %w", format, core.ErrUnsupportedFormat)
	}
}

func renderMarkdown(r *ProcessingResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Task Processing Report: %s\n\n", r.Task.Title)
	fmt.Fprintf(&sb, "- **Task ID:** %s\n", r.Task.ID)
	fmt.Fprintf(&sb, "- **Architecture:** %s\n", r.Architecture)
	fmt.Fprintf(&sb, "- **Priority:** %s\n", r.Task.Priority)
	fmt.Fprintf(&sb, "- **Processed:** %s\n", r.Timestamp.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&sb, "- **Duration:** %s\n", r.Duration)

	if r.Task.Description != "" {
		fmt.Fprintf(&sb, "\n## Description\n\n%s\n", r.Task.Description)
	}

	sb.WriteString("\n## Metrics\n\n")
	writeSortedMap(&sb, r.Metadata)

	sb.WriteString("\n## Summary\n\n")
	writeSortedMap(&sb, r.Summary)

	return sb.String()
}

func writeSortedMap(sb *strings.Builder, kv map[string]any) {
	keys := make([]string, 0, len(kv))
	for k := range kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, "- **%s:** %v\n", k, kv[k])
	}
}
