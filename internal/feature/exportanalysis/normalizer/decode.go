package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"umkm_backend/internal/feature/exportanalysis/domain/entity"
	"umkm_backend/internal/feature/exportanalysis/prompt"
)

// MaxSuggestions is the upper bound of a suggestion list.
const MaxSuggestions = 5

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("demand", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseDemandLevel(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParseLevel(fl.Field().String())
		return ok
	})
	return v
}

// DecodeAnalysis extracts and validates an ExportAnalysis from a model reply.
// Missing fields, unknown ratings and out-of-range trend values are rejected.
func DecodeAnalysis(raw string) (*entity.ExportAnalysis, error) {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON found", ErrMalformedResponse)
	}

	var p prompt.AnalysisPayload
	if err := decodeStrict(payload, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if strings.TrimSpace(p.Insights) == "" {
		return nil, fmt.Errorf("%w: empty insights", ErrMalformedResponse)
	}

	return toAnalysis(p), nil
}

// DecodeSuggestions extracts a list of product names from a model reply.
// Items are trimmed, blanks dropped and the list is capped at MaxSuggestions.
func DecodeSuggestions(raw string) ([]string, error) {
	payload, ok := ExtractJSON(raw)
	if !ok {
		return nil, fmt.Errorf("%w: no JSON found", ErrMalformedResponse)
	}

	var items []string
	if err := decodeStrict(payload, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make([]string, 0, MaxSuggestions)
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out, nil
}

// decodeStrict rejects trailing data after the first JSON value.
func decodeStrict(payload string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}

func toAnalysis(p prompt.AnalysisPayload) *entity.ExportAnalysis {
	out := &entity.ExportAnalysis{
		Destinations: make([]entity.Destination, 0, len(p.Destinations)),
		Trends:       make([]entity.Trend, 0, len(p.Trends)),
		Regulations:  make([]entity.Regulation, 0, len(p.Regulations)),
		Insights:     strings.TrimSpace(p.Insights),
	}
	for _, d := range p.Destinations {
		// 検証済みなので変換は必ず成功する
		demand, _ := entity.ParseDemandLevel(d.Demand)
		competition, _ := entity.ParseLevel(d.Competition)
		barriers, _ := entity.ParseLevel(d.Barriers)
		out.Destinations = append(out.Destinations, entity.Destination{
			Country:     d.Country,
			Flag:        d.Flag,
			Demand:      demand,
			Growth:      d.Growth,
			MarketSize:  d.MarketSize,
			Competition: competition,
			Barriers:    barriers,
			Reasoning:   d.Reasoning,
		})
	}
	for _, t := range p.Trends {
		out.Trends = append(out.Trends, entity.Trend{
			Period:      t.Period,
			Value:       t.Value,
			Change:      t.Change,
			Description: t.Description,
		})
	}
	for _, r := range p.Regulations {
		out.Regulations = append(out.Regulations, entity.Regulation{
			Country:      r.Country,
			Requirements: r.Requirements,
			Timeline:     r.Timeline,
			Cost:         r.Cost,
			Notes:        r.Notes,
		})
	}
	return out
}
