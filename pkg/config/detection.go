package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ncruces/go-strftime"
	"gopkg.in/yaml.v3"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
)

const (
	// DefaultDateCoverage is the fraction of non-null values that must
	// parse under a date format for it to qualify.
	DefaultDateCoverage = 0.95
	// DefaultAllowedValuesLimit is the cardinality cutoff under which a
	// column's distinct values are enumerated.
	DefaultAllowedValuesLimit = 20
)

var (
	defaultTrueValues  = []string{"true", "yes", "si", "1"}
	defaultFalseValues = []string{"false", "no", "0"}
)

// DetectionOptions is the declarative source for a DetectionConfig.
// Date formats accept either strftime patterns ("%Y-%m-%d") or Go
// reference layouts ("2006-01-02").
type DetectionOptions struct {
	TextKeywords       []string `yaml:"text_keywords"`
	FloatKeywords      []string `yaml:"float_keywords"`
	DateFormats        []string `yaml:"date_formats"`
	BooleanTrueValues  []string `yaml:"boolean_true_values"`
	BooleanFalseValues []string `yaml:"boolean_false_values"`
	DateCoverage       *float64 `yaml:"date_coverage"`
	AllowedValuesLimit *int     `yaml:"allowed_values_limit"`
}

// DetectionConfig holds the keyword override rules and candidate date
// formats used by type detection. It is immutable after construction and
// safe to share across concurrent detections.
type DetectionConfig struct {
	textKeywords       []string
	floatKeywords      []string
	dateFormats        []dateFormat
	trueValues         map[string]struct{}
	falseValues        map[string]struct{}
	dateCoverage       float64
	allowedValuesLimit int
}

// dateFormat keeps the pattern as configured next to the Go layout it
// parses with, so detection metadata reports the configured spelling.
type dateFormat struct {
	pattern string
	layout  string
}

// LoadDetectionConfig reads a keyword/date-format YAML file.
func LoadDetectionConfig(path string) (*DetectionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &apperrors.ConfigurationError{Source: path, Reason: "cannot read file", Err: err}
	}

	var opts DetectionOptions
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, &apperrors.ConfigurationError{Source: path, Reason: "malformed YAML", Err: err}
	}

	cfg, err := NewDetectionConfig(opts)
	if err != nil {
		var cfgErr *apperrors.ConfigurationError
		if errors.As(err, &cfgErr) && cfgErr.Source == "" {
			cfgErr.Source = path
		}
		return nil, err
	}
	return cfg, nil
}

// NewDetectionConfig validates options and builds an immutable config.
func NewDetectionConfig(opts DetectionOptions) (*DetectionConfig, error) {
	if len(opts.DateFormats) == 0 {
		return nil, &apperrors.ConfigurationError{Reason: "date_formats must list at least one format"}
	}

	formats := make([]dateFormat, 0, len(opts.DateFormats))
	for _, pattern := range opts.DateFormats {
		layout := pattern
		if strings.Contains(pattern, "%") {
			l, err := strftime.Layout(pattern)
			if err != nil {
				return nil, &apperrors.ConfigurationError{
					Reason: fmt.Sprintf("invalid date format %q", pattern),
					Err:    err,
				}
			}
			layout = l
		}
		formats = append(formats, dateFormat{pattern: pattern, layout: layout})
	}

	coverage := DefaultDateCoverage
	if opts.DateCoverage != nil {
		coverage = *opts.DateCoverage
		if coverage <= 0 || coverage > 1 {
			return nil, &apperrors.ConfigurationError{
				Reason: fmt.Sprintf("date_coverage %v outside (0, 1]", coverage),
			}
		}
	}

	limit := DefaultAllowedValuesLimit
	if opts.AllowedValuesLimit != nil {
		limit = *opts.AllowedValuesLimit
		if limit < 0 {
			return nil, &apperrors.ConfigurationError{
				Reason: fmt.Sprintf("allowed_values_limit %d is negative", limit),
			}
		}
	}

	trueValues := opts.BooleanTrueValues
	if len(trueValues) == 0 {
		trueValues = defaultTrueValues
	}
	falseValues := opts.BooleanFalseValues
	if len(falseValues) == 0 {
		falseValues = defaultFalseValues
	}

	return &DetectionConfig{
		textKeywords:       lowerAll(opts.TextKeywords),
		floatKeywords:      lowerAll(opts.FloatKeywords),
		dateFormats:        formats,
		trueValues:         toSet(trueValues),
		falseValues:        toSet(falseValues),
		dateCoverage:       coverage,
		allowedValuesLimit: limit,
	}, nil
}

// TextKeywords returns a copy of the text override keywords, lowercased.
func (c *DetectionConfig) TextKeywords() []string {
	return append([]string(nil), c.textKeywords...)
}

// FloatKeywords returns a copy of the float override keywords, lowercased.
func (c *DetectionConfig) FloatKeywords() []string {
	return append([]string(nil), c.floatKeywords...)
}

// DateFormats returns the configured date format patterns in trial order.
func (c *DetectionConfig) DateFormats() []string {
	patterns := make([]string, len(c.dateFormats))
	for i, f := range c.dateFormats {
		patterns[i] = f.pattern
	}
	return patterns
}

// DateLayouts returns (pattern, Go layout) pairs in trial order.
func (c *DetectionConfig) DateLayouts() [][2]string {
	pairs := make([][2]string, len(c.dateFormats))
	for i, f := range c.dateFormats {
		pairs[i] = [2]string{f.pattern, f.layout}
	}
	return pairs
}

// DateCoverage returns the qualification threshold for date formats.
func (c *DetectionConfig) DateCoverage() float64 { return c.dateCoverage }

// AllowedValuesLimit returns the cardinality cutoff K.
func (c *DetectionConfig) AllowedValuesLimit() int { return c.allowedValuesLimit }

// BooleanValue maps a raw cell to a boolean when it belongs to the
// recognized truth value sets.
func (c *DetectionConfig) BooleanValue(raw string) (value, ok bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := c.trueValues[key]; ok {
		return true, true
	}
	if _, ok := c.falseValues[key]; ok {
		return false, true
	}
	return false, false
}

// MatchTextKeyword returns the first text keyword contained in name,
// case-insensitive.
func (c *DetectionConfig) MatchTextKeyword(name string) (string, bool) {
	return matchKeyword(name, c.textKeywords)
}

// MatchFloatKeyword returns the first float keyword contained in name,
// case-insensitive.
func (c *DetectionConfig) MatchFloatKeyword(name string) (string, bool) {
	return matchKeyword(name, c.floatKeywords)
}

func matchKeyword(name string, keywords []string) (string, bool) {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

func toSet(in []string) map[string]struct{} {
	set := make(map[string]struct{}, len(in))
	for _, s := range in {
		set[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}
	return set
}
