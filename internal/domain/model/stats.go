package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	PlatformLeetCode   = "leetcode"
	PlatformHackerRank = "hackerrank"
	PlatformCodeChef   = "codechef"
	PlatformCodeForces = "codeforces"
)

// NotAvailableText is what platforms report when a rating or rank is missing.
const NotAvailableText = "N/A"

// StatsResult is the normalized profile summary every platform handler produces.
type StatsResult struct {
	Username      string         `json:"username"`
	Rating        Metric         `json:"rating"`
	Solved        int            `json:"solved"`
	Rank          Metric         `json:"rank"`
	LanguageStats map[string]int `json:"languageStats"`
}

// NewStatsResult returns a result with both metrics set to N/A and an empty language map.
func NewStatsResult(username string) *StatsResult {
	return &StatsResult{
		Username:      username,
		Rating:        NotAvailable,
		Rank:          NotAvailable,
		LanguageStats: map[string]int{},
	}
}

// Metric is a rating or rank. Upstreams report these as numbers or as free text;
// numeric values keep their upstream textual form so 1523.45 stays 1523.45.
type Metric struct {
	value   string
	numeric bool
}

var NotAvailable = TextMetric(NotAvailableText)

func TextMetric(s string) Metric {
	return Metric{value: s}
}

func IntMetric(n int) Metric {
	return Metric{value: strconv.Itoa(n), numeric: true}
}

func NumberMetric(n json.Number) Metric {
	return Metric{value: n.String(), numeric: true}
}

// ParseMetric decodes an arbitrary JSON value. Numbers and non-empty strings are
// kept; null, absent, empty or structured values yield fallback.
func ParseMetric(raw json.RawMessage, fallback Metric) Metric {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return fallback
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || strings.TrimSpace(s) == "" {
			return fallback
		}
		return TextMetric(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fallback
		}
		return NumberMetric(n)
	default:
		return fallback
	}
}

func (m Metric) String() string {
	return m.value
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if m.numeric {
		return []byte(m.value), nil
	}
	if m.value == "" {
		return json.Marshal(NotAvailableText)
	}
	return json.Marshal(m.value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	*m = ParseMetric(data, NotAvailable)
	return nil
}

// LanguageTotal sums the per-language counters.
func (s *StatsResult) LanguageTotal() int {
	total := 0
	for _, n := range s.LanguageStats {
		total += n
	}
	return total
}
