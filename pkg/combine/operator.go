package combine

import (
	"fmt"

	apperrors "github.com/ZanzyTHEbar/seriescombine/internal/errors"
)

// Operator selects how series are folded together.
type Operator int

const (
	// WeightedBlend folds left: acc[j] = alpha*acc[j] + (1-alpha)*s[j].
	WeightedBlend Operator = iota + 1
	// PointwiseProduct multiplies all series elementwise. alpha is ignored.
	PointwiseProduct
)

var operatorTokens = map[string]Operator{
	"add":      WeightedBlend,
	"+":        WeightedBlend,
	"multiply": PointwiseProduct,
	"*":        PointwiseProduct,
}

// ParseOperator maps an operator token to its Operator. Tokens are matched
// exactly.
func ParseOperator(token string) (Operator, error) {
	op, ok := operatorTokens[token]
	if !ok {
		return 0, apperrors.NewUnsupportedOperationError(token)
	}
	return op, nil
}

// Tokens returns every accepted operator token.
func Tokens() []string {
	return []string{"add", "+", "multiply", "*"}
}

// Valid reports whether op is one of the defined operators.
func (op Operator) Valid() bool {
	switch op {
	case WeightedBlend, PointwiseProduct:
		return true
	default:
		return false
	}
}

// String returns the canonical token.
func (op Operator) String() string {
	switch op {
	case WeightedBlend:
		return "add"
	case PointwiseProduct:
		return "multiply"
	default:
		return fmt.Sprintf("Operator(%d)", int(op))
	}
}
