package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// ParseConfidence accepts any casing.
func ParseConfidence(s string) (Confidence, bool) {
	s = strings.TrimSpace(s)
	for _, c := range []Confidence{ConfidenceLow, ConfidenceMedium, ConfidenceHigh} {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// TriageResult is a specialty recommendation for free-text symptoms.
type TriageResult struct {
	Specialty  string
	Confidence Confidence
	Reasoning  string
	Score      decimal.Decimal
	Source     string
}

const (
	TriageSourceKeyword = "keyword"
	TriageSourceModel   = "model"
)
