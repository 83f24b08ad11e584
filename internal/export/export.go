// Package export renders a group as a portable, ID-free document that can
// be downloaded or archived. Member IDs are replaced with names.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/groupledger/internal/models"
)

// Format selects the encoding of an export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts json, yaml or yml. The empty string means json.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Amount is a money value written as a bare two-decimal number.
type Amount decimal.Decimal

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

func (a Amount) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: decimal.Decimal(a).StringFixed(2)}, nil
}

// Group is the exported form of a group.
type Group struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Currency    string    `json:"currency" yaml:"currency"`
	Category    string    `json:"category" yaml:"category"`
	Members     []Member  `json:"members" yaml:"members"`
	Expenses    []Expense `json:"expenses" yaml:"expenses"`
}

type Member struct {
	Name string `json:"name" yaml:"name"`
}

type Expense struct {
	Description  string       `json:"description" yaml:"description"`
	Amount       Amount       `json:"amount" yaml:"amount"`
	Category     string       `json:"category" yaml:"category"`
	Date         string       `json:"date" yaml:"date"`
	Notes        string       `json:"notes" yaml:"notes"`
	PaidBy       []NamedShare `json:"paidBy" yaml:"paidBy"`
	SplitBetween []NamedShare `json:"splitBetween" yaml:"splitBetween"`
	SplitType    string       `json:"splitType" yaml:"splitType"`
}

// NamedShare is a payer contribution or split share keyed by member name.
type NamedShare struct {
	Name   string `json:"name" yaml:"name"`
	Amount Amount `json:"amount" yaml:"amount"`
}

// Project builds the export document for g. References to members that are
// not in the group resolve to "Unknown".
func Project(g *models.Group) Group {
	out := Group{
		Name:        g.Name,
		Description: g.Description,
		Currency:    g.Currency,
		Category:    g.Category,
		Members:     make([]Member, len(g.Members)),
		Expenses:    make([]Expense, len(g.Expenses)),
	}
	for i, m := range g.Members {
		out.Members[i] = Member{Name: m.Name}
	}
	for i, e := range g.Expenses {
		x := Expense{
			Description:  e.Description,
			Amount:       Amount(e.Amount),
			Category:     e.Category,
			Date:         e.Date.String(),
			Notes:        e.Notes,
			PaidBy:       make([]NamedShare, len(e.Payers)),
			SplitBetween: make([]NamedShare, len(e.Splits)),
			SplitType:    string(e.SplitType),
		}
		for j, p := range e.Payers {
			x.PaidBy[j] = NamedShare{Name: g.MemberName(p.MemberID), Amount: Amount(p.Amount)}
		}
		for j, s := range e.Splits {
			x.SplitBetween[j] = NamedShare{Name: g.MemberName(s.MemberID), Amount: Amount(s.Amount)}
		}
		out.Expenses[i] = x
	}
	return out
}

// Encode writes v to w in the given format. JSON is indented by two spaces.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %q", models.ErrUnsupportedFormat, format)
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the suggested download name: the group name with whitespace
// runs replaced by dashes, followed by "-expenses" and the format extension.
func FileName(g *models.Group, format Format) string {
	return fmt.Sprintf("%s-expenses.%s", whitespace.ReplaceAllString(g.Name, "-"), format)
}
