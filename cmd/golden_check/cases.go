package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"depression-api/internal/domain"
	"depression-api/internal/features"
	"depression-api/internal/service"
)

// GoldenCase es un par entrada/salida conocido. ExpectedError se usa para casos que
// deben fallar con un error de encoding.
type GoldenCase struct {
	Name          string             `json:"name"`
	Input         domain.InputRecord `json:"input"`
	Expected      domain.Label       `json:"expected,omitempty"`
	ExpectedError string             `json:"expected_error,omitempty"`
}

type caseResult struct {
	Case GoldenCase
	Got  string
	Pass bool
}

func loadCases(path string) ([]GoldenCase, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cases %s: %w", path, err)
	}
	var cases []GoldenCase
	if err := json.Unmarshal(payload, &cases); err != nil {
		return nil, fmt.Errorf("decode cases: %w", err)
	}
	if len(cases) == 0 {
		return nil, errors.New("no golden cases")
	}
	for i, c := range cases {
		if c.Expected == "" && c.ExpectedError == "" {
			return nil, fmt.Errorf("case %d (%s): expected or expected_error is required", i, c.Name)
		}
	}
	return cases, nil
}

// runCases corre cada caso contra el servicio. Un error que no es de encoding corta la
// corrida porque indica artefactos rotos, no un caso fallido.
func runCases(ctx context.Context, svc *service.PredictionService, cases []GoldenCase) ([]caseResult, error) {
	results := make([]caseResult, 0, len(cases))
	for _, c := range cases {
		res := caseResult{Case: c}
		pred, err := svc.Predict(ctx, c.Input)
		var encErr *features.EncodingError
		switch {
		case err == nil:
			res.Got = string(pred.Label)
			res.Pass = c.ExpectedError == "" && pred.Label == c.Expected
		case errors.As(err, &encErr):
			res.Got = encErr.Error()
			res.Pass = c.ExpectedError != "" && res.Got == c.ExpectedError
		default:
			return results, fmt.Errorf("case %q: %w", c.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}

func countFailures(results []caseResult) int {
	n := 0
	for _, r := range results {
		if !r.Pass {
			n++
		}
	}
	return n
}

func (c GoldenCase) want() string {
	if c.ExpectedError != "" {
		return c.ExpectedError
	}
	return string(c.Expected)
}
