package opa

import (
	"context"
	"errors"
	"os"

	"github.com/adrianliechti/narrator/pkg/policy"

	"github.com/open-policy-agent/opa/v1/rego"
)

var _ policy.Provider = (*Provider)(nil)

// DefaultQuery is evaluated against the selection as input.
const DefaultQuery = "data.narrator.allow"

// Provider decides selections with a Rego policy, e.g.
//
//	package narrator
//
//	default allow := false
//
//	allow if input.model in {"melotts", "aura"}
type Provider struct {
	query rego.PreparedEvalQuery
}

func New(module string) (*Provider, error) {
	if module == "" {
		return nil, errors.New("policy module is required")
	}

	query, err := rego.New(
		rego.Query(DefaultQuery),
		rego.Module("policy.rego", module),
	).PrepareForEval(context.Background())

	if err != nil {
		return nil, err
	}

	return &Provider{
		query: query,
	}, nil
}

func NewFromFile(path string) (*Provider, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return New(string(data))
}

func (p *Provider) Verify(ctx context.Context, selection policy.Selection) error {
	input := map[string]any{
		"model":   selection.Model,
		"speaker": selection.Speaker,
		"lang":    selection.Language,
		"user":    selection.User,
	}

	results, err := p.query.Eval(ctx, rego.EvalInput(input))

	if err != nil {
		return err
	}

	if !results.Allowed() {
		return policy.ErrForbidden
	}

	return nil
}
