// Package combine folds a collection of equal-length numeric series into a
// single series, either as a weighted blend or as a pointwise product.
//
// Inputs are never mutated and every result is freshly allocated, so calls
// may run concurrently as long as nobody writes to the inputs meanwhile.
package combine

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	apperrors "github.com/ZanzyTHEbar/seriescombine/internal/errors"
)

var (
	// ErrInvalidArgument matches empty collections and length mismatches.
	ErrInvalidArgument = apperrors.ErrInvalidArgument
	// ErrUnsupportedOperation matches unrecognized operator tokens.
	ErrUnsupportedOperation = apperrors.ErrUnsupportedOperation
)

// Result is the combined series.
type Result struct {
	Result []float64 `json:"result"`
}

// IsInvalidArgument reports whether err came from a rejected series collection.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsUnsupportedOperation reports whether err came from a rejected operator.
func IsUnsupportedOperation(err error) bool {
	return errors.Is(err, ErrUnsupportedOperation)
}

// Validate checks that series is non-empty and that every series has the
// length of series[0], which it returns.
func Validate(series [][]float64) (int, error) {
	if len(series) == 0 {
		return 0, apperrors.NewValidationError("series collection is empty", nil)
	}

	n := len(series[0])
	for i := 1; i < len(series); i++ {
		if len(series[i]) != n {
			return 0, apperrors.NewValidationError("series length mismatch", map[string]interface{}{
				"index":           i,
				"expected_length": n,
				"actual_length":   len(series[i]),
			})
		}
	}

	return n, nil
}

// Combine parses op and folds series with it. Accepted tokens are "add" and
// "+" for WeightedBlend, "multiply" and "*" for PointwiseProduct.
func Combine(series [][]float64, op string, alpha float64) (Result, error) {
	operator, err := ParseOperator(op)
	if err != nil {
		return Result{}, err
	}
	return CombineWith(series, operator, alpha)
}

// CombineWith folds series left to right starting from a copy of series[0].
//
// For WeightedBlend each step computes acc[j] = alpha*acc[j] + (1-alpha)*s[j],
// so with two series the result is alpha*series[0] + (1-alpha)*series[1].
// For PointwiseProduct the result is the plain elementwise product of all
// series and alpha is ignored. A single series yields a copy of itself.
func CombineWith(series [][]float64, op Operator, alpha float64) (Result, error) {
	var step func(acc, s []float64)
	switch op {
	case WeightedBlend:
		step = func(acc, s []float64) {
			floats.Scale(alpha, acc)
			floats.AddScaled(acc, 1-alpha, s)
		}
	case PointwiseProduct:
		step = floats.Mul
	default:
		return Result{}, apperrors.NewUnsupportedOperationError(op.String())
	}

	n, err := Validate(series)
	if err != nil {
		return Result{}, err
	}

	acc := make([]float64, n)
	copy(acc, series[0])
	for _, s := range series[1:] {
		step(acc, s)
	}

	return Result{Result: acc}, nil
}

// Blend returns alpha*a + (1-alpha)*b elementwise.
func Blend(a, b []float64, alpha float64) ([]float64, error) {
	res, err := CombineWith([][]float64{a, b}, WeightedBlend, alpha)
	if err != nil {
		return nil, err
	}
	return res.Result, nil
}

// Product returns the elementwise product of a and b.
func Product(a, b []float64) ([]float64, error) {
	res, err := CombineWith([][]float64{a, b}, PointwiseProduct, 0)
	if err != nil {
		return nil, err
	}
	return res.Result, nil
}
