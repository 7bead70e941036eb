package policy

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
)

// Policy files are HCL:
//
//	policy "total cap" {
//	  type       = "TOTAL_BUDGET"
//	  max_amount = 15 * lakh
//	}
//
// Amount expressions may use the lakh and crore constants.
type policyFile struct {
	Policies []policyBlock `hcl:"policy,block"`
}

type policyBlock struct {
	Name          string  `hcl:"name,label"`
	Type          string  `hcl:"type"`
	Category      string  `hcl:"category,optional"`
	Space         string  `hcl:"space,optional"`
	ComponentType string  `hcl:"component_type,optional"`
	MaxAmount     float64 `hcl:"max_amount,optional"`
	WarnThreshold float64 `hcl:"warn_threshold,optional"`
	MaxCount      int     `hcl:"max_count,optional"`
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"lakh":  cty.NumberIntVal(100_000),
			"crore": cty.NumberIntVal(10_000_000),
		},
	}
}

// LoadFile parses an HCL policy file into a policy set
func LoadFile(path string) ([]Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse policy file: %s", diags.Error())
	}
	return decode(file.Body)
}

// LoadBytes parses HCL policy content, with the given name used in
// diagnostics.
func LoadBytes(content []byte, filename string) ([]Policy, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(content, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse policy content: %s", diags.Error())
	}
	return decode(file.Body)
}

func decode(body hcl.Body) ([]Policy, error) {
	var pf policyFile
	if diags := gohcl.DecodeBody(body, evalContext(), &pf); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode policies: %s", diags.Error())
	}

	policies := make([]Policy, 0, len(pf.Policies))
	for _, block := range pf.Policies {
		p := Policy{
			Name:          block.Name,
			Type:          PolicyType(block.Type),
			Category:      block.Category,
			Space:         block.Space,
			ComponentType: block.ComponentType,
			MaxAmount:     decimal.NewFromFloat(block.MaxAmount),
			WarnThreshold: decimal.NewFromFloat(block.WarnThreshold),
			MaxCount:      block.MaxCount,
		}
		switch p.Type {
		case PolicyTypeTotalBudget, PolicyTypeCategoryBudget, PolicyTypeSpaceBudget, PolicyTypeComponentCount:
		default:
			return nil, fmt.Errorf("policy %q has unknown type %q", block.Name, block.Type)
		}
		policies = append(policies, p)
	}

	return policies, nil
}
