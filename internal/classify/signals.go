package classify

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Knotcreativ/kraftd-extract/constants"
)

//go:embed signals.yaml
var signalsYAML []byte

// Signal is one weighted piece of evidence for a document type.
type Signal struct {
	Pattern string  `yaml:"pattern"`
	Kind    string  `yaml:"kind"` // anchor, phrase, structure
	Weight  float64 `yaml:"weight"`

	re *regexp.Regexp // compiled for kind=phrase
}

type signalFile struct {
	Types map[string][]Signal `yaml:"types"`
}

// signalTable holds the compiled per-type signal sets, in file order.
type signalTable map[constants.DocumentType][]Signal

// loadSignalTable parses and compiles the embedded signal sets.
func loadSignalTable() (signalTable, error) {
	var f signalFile
	if err := yaml.Unmarshal(signalsYAML, &f); err != nil {
		return nil, fmt.Errorf("parse signals.yaml: %w", err)
	}
	table := make(signalTable, len(f.Types))
	for name, sigs := range f.Types {
		docType := constants.ParseDocumentType(name)
		if !docType.IsClassifiable() {
			return nil, fmt.Errorf("signals.yaml: %q is not a classifiable type", name)
		}
		compiled := make([]Signal, len(sigs))
		for i, s := range sigs {
			switch s.Kind {
			case "anchor", "structure":
				// matched without regex
			case "phrase":
				re, err := regexp.Compile(s.Pattern)
				if err != nil {
					return nil, fmt.Errorf("signals.yaml: %s pattern %q: %w", name, s.Pattern, err)
				}
				s.re = re
			default:
				return nil, fmt.Errorf("signals.yaml: unknown kind %q", s.Kind)
			}
			compiled[i] = s
		}
		table[docType] = compiled
	}
	return table, nil
}

// matches reports whether the signal fires on the given text, and returns a
// short description of what matched for the reasoning trail.
func (s Signal) matches(text, lower string) (bool, string) {
	switch s.Kind {
	case "anchor":
		if strings.Contains(lower, s.Pattern) {
			return true, fmt.Sprintf("anchor %q", s.Pattern)
		}
	case "phrase":
		if m := s.re.FindString(text); m != "" {
			return true, fmt.Sprintf("phrase %q", condense(m))
		}
	case "structure":
		if det, ok := structureDetectors[s.Pattern]; ok {
			if n := det(text); n > 0 {
				return true, fmt.Sprintf("structure %s (%d rows)", s.Pattern, n)
			}
		}
	}
	return false, ""
}

// structureDetectors are named cues over document shape rather than wording.
// Each returns a hit count (0 = no match).
var structureDetectors = map[string]func(string) int{
	"item_table": detectItemTable,
}

var numericCell = regexp.MustCompile(`^-?\d{1,3}(,\d{3})*(\.\d+)?$|^-?\d+(\.\d+)?$`)

// detectItemTable counts delimited rows that start with a numeric index and
// carry at least two numeric cells (quantity/price columns).
func detectItemTable(text string) int {
	rows := 0
	for _, line := range strings.Split(text, "\n") {
		cells := splitRow(line)
		if len(cells) < 3 {
			continue
		}
		if !numericCell.MatchString(cells[0]) {
			continue
		}
		numeric := 0
		for _, c := range cells[1:] {
			if numericCell.MatchString(stripMoney(c)) {
				numeric++
			}
		}
		if numeric >= 2 {
			rows++
		}
	}
	return rows
}

var multiSpace = regexp.MustCompile(`\s{2,}|\t`)

// splitRow splits a candidate table row on pipes, tabs, or column gaps.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	var parts []string
	if strings.Contains(line, "|") {
		parts = strings.Split(strings.Trim(line, "|"), "|")
	} else {
		parts = multiSpace.Split(line, -1)
	}
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripMoney removes currency symbols/codes so "$1,200.00" parses as numeric.
func stripMoney(s string) string {
	s = strings.TrimSpace(s)
	for sym := range constants.CurrencySymbols {
		s = strings.ReplaceAll(s, sym, "")
	}
	fields := strings.Fields(s)
	if len(fields) == 2 && constants.IsCurrencyCode(fields[0]) {
		return fields[1]
	}
	if len(fields) == 2 && constants.IsCurrencyCode(fields[1]) {
		return fields[0]
	}
	return strings.TrimSpace(s)
}

// condense collapses whitespace runs in matched evidence for log-friendly output.
func condense(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
