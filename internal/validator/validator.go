package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/morph/internal/dto"
)

// Severity grades a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one problem reported by Lint.
type Finding struct {
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Path, f.Message)
}

// nested lists the keys under which an entry holds other entries.
var nested = []string{"children", "else", "insertion", "phases", "removal", "then"}

type item struct {
	path  string
	entry map[string]any
}

// Lint crawls the transition tree of doc and reports references to unknown
// nodes, nodes nothing animates, and containers that do nothing. It does not
// check parameter types; the compiler does that.
func Lint(doc *dto.Document) []Finding {
	var findings []Finding
	used := make(map[string]bool)

	if doc.Transition == nil {
		return []Finding{{SeverityError, "transition", "missing"}}
	}

	queue := []item{{"transition", doc.Transition}}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, ref := range []string{"node", "target"} {
			id, ok := current.entry[ref].(string)
			if !ok {
				continue
			}
			used[id] = true
			if _, exists := doc.Nodes[id]; !exists {
				findings = append(findings, Finding{SeverityError, current.path + "." + ref, fmt.Sprintf("unknown node %q", id)})
			}
		}

		kind, _ := current.entry[dto.KeyKind].(string)
		count := 0
		for _, key := range nested {
			value, ok := current.entry[key]
			if !ok {
				continue
			}
			switch v := value.(type) {
			case []any:
				for i, raw := range v {
					if child, ok := raw.(map[string]any); ok {
						queue = append(queue, item{fmt.Sprintf("%s.%s[%d]", current.path, key, i), child})
						count++
					}
				}
			case map[string]any:
				queue = append(queue, item{current.path + "." + key, v})
				count++
			}
		}

		switch kind {
		case "combined", "keyframes", "asymmetric", "conditional":
			if count == 0 {
				findings = append(findings, Finding{SeverityWarning, current.path, kind + " has no entries"})
			}
		}
		if kind == "keyframes" && count == 1 {
			findings = append(findings, Finding{SeverityWarning, current.path, "keyframes with a single phase plays it over the whole range"})
		}
	}

	for _, id := range slices.Sorted(maps.Keys(doc.Nodes)) {
		if !used[id] {
			findings = append(findings, Finding{SeverityWarning, "nodes." + id, "not animated by any entry"})
		}
	}

	return findings
}

// Check runs Lint and fails when any finding is an error.
func Check(doc *dto.Document) error {
	var errors []string
	for _, f := range Lint(doc) {
		if f.Severity == SeverityError {
			errors = append(errors, f.Path+": "+f.Message)
		}
	}
	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
