// Package regression fits and evaluates the two-feature CO2 model.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"co2-predictor-service/internal/core/domain"
)

const (
	// intercept, weight, volume
	numParams = 3
	minRows   = numParams

	// Relative size below which a diagonal entry of R is treated as zero.
	// Columns are normalized before factorization, so this is scale free.
	rankTolerance = 1e-10
)

// Train fits ordinary least squares over the design matrix [1, weight, volume]
// using a QR decomposition. The returned artifact carries the coefficients and
// a training summary; ID and CreatedAt are left for the caller to assign.
//
// The same dataset in the same order always yields bit-identical coefficients.
func Train(dataset domain.Dataset) (*domain.ModelArtifact, error) {
	n := len(dataset)
	if n < minRows {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInsufficientData, n)
	}

	x := mat.NewDense(n, numParams, nil)
	y := mat.NewVecDense(n, nil)
	for i, rec := range dataset {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		x.Set(i, 0, 1)
		x.Set(i, 1, rec.Weight)
		x.Set(i, 2, rec.Volume)
		y.SetVec(i, rec.CO2)
	}

	scale, err := normalizeColumns(x)
	if err != nil {
		return nil, err
	}

	var qr mat.QR
	qr.Factorize(x)

	var r mat.Dense
	qr.RTo(&r)
	if !fullRank(&r) {
		return nil, domain.ErrSingularMatrix
	}

	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %g", domain.ErrSingularMatrix, float64(cond))
		}
		return nil, fmt.Errorf("solve least squares: %w", err)
	}

	artifact := &domain.ModelArtifact{
		Intercept:         beta.AtVec(0) / scale[0],
		CoefficientWeight: beta.AtVec(1) / scale[1],
		CoefficientVolume: beta.AtVec(2) / scale[2],
	}
	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSingularMatrix, err)
	}

	mse, err := MeanSquaredError(artifact, dataset)
	if err != nil {
		return nil, err
	}
	r2, err := Score(artifact, dataset)
	if err != nil {
		return nil, err
	}
	artifact.Training = domain.TrainingSummary{Rows: n, MSE: mse, R2: r2}

	return artifact, nil
}

// normalizeColumns scales every column of x to unit Euclidean norm in place
// and returns the original norms.
func normalizeColumns(x *mat.Dense) ([]float64, error) {
	rows, cols := x.Dims()
	scale := make([]float64, cols)
	for j := 0; j < cols; j++ {
		norm := mat.Norm(x.ColView(j), 2)
		if norm == 0 {
			return nil, fmt.Errorf("%w: column %d is all zeros", domain.ErrSingularMatrix, j)
		}
		scale[j] = norm
		for i := 0; i < rows; i++ {
			x.Set(i, j, x.At(i, j)/norm)
		}
	}
	return scale, nil
}

func fullRank(r *mat.Dense) bool {
	_, cols := r.Dims()
	var largest float64
	for i := 0; i < cols; i++ {
		largest = math.Max(largest, math.Abs(r.At(i, i)))
	}
	if largest == 0 {
		return false
	}
	for i := 0; i < cols; i++ {
		if math.Abs(r.At(i, i)) <= rankTolerance*largest {
			return false
		}
	}
	return true
}
