package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// functions are callable from any expression in a session file.
func functions() map[string]function.Function {
	return map[string]function.Function{
		"abs":    stdlib.AbsoluteFunc,
		"concat": stdlib.ConcatFunc,
		"format": stdlib.FormatFunc,
		"lower":  stdlib.LowerFunc,
		"max":    stdlib.MaxFunc,
		"min":    stdlib.MinFunc,
		"upper":  stdlib.UpperFunc,
	}
}

// evalLocals evaluates every locals block and returns the context later blocks
// are decoded in: the functions plus a `local` object. Locals may call
// functions but may not refer to each other.
func evalLocals(blocks []*localsBlock) (*hcl.EvalContext, error) {
	base := &hcl.EvalContext{Functions: functions()}
	locals := make(map[string]cty.Value)

	for _, block := range blocks {
		attrs, diags := block.Body.JustAttributes()
		if diags.HasErrors() {
			return nil, diags
		}
		for name, attr := range attrs {
			if _, dup := locals[name]; dup {
				return nil, fmt.Errorf("local %q is defined more than once (%s)", name, attr.Range)
			}
			val, diags := attr.Expr.Value(base)
			if diags.HasErrors() {
				return nil, diags
			}
			locals[name] = val
		}
	}

	return &hcl.EvalContext{
		Functions: base.Functions,
		Variables: map[string]cty.Value{"local": cty.ObjectVal(locals)},
	}, nil
}
