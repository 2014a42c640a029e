// Package rules holds the color interaction matrix of a particle-life system.
package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
)

// ErrInvalid is returned by Validate and Load for malformed matrices.
var ErrInvalid = errors.New("invalid rule matrix")

// Matrix is an m×m table of attraction (>0) / repulsion (<0) coefficients
// indexed [source color][neighbor color]. Every cell lies in [-1, 1].
type Matrix [][]float64

// Random draws every cell independently from U[-1, 1].
func Random(m int, rng *rand.Rand) Matrix {
	if m <= 0 {
		return Matrix{}
	}
	mx := make(Matrix, m)
	for i := range mx {
		mx[i] = make([]float64, m)
		for j := range mx[i] {
			mx[i][j] = rng.Float64()*2 - 1
		}
	}
	return mx
}

// Size returns the palette size m.
func (mx Matrix) Size() int {
	return len(mx)
}

// At returns the coefficient for a particle of color src reacting to a
// neighbor of color dst. Out of range colors are a programming error.
func (mx Matrix) At(src, dst int) float64 {
	if src < 0 || src >= len(mx) || dst < 0 || dst >= len(mx) {
		panic(fmt.Sprintf("rules: color pair (%d, %d) outside palette of size %d", src, dst, len(mx)))
	}
	return mx[src][dst]
}

// Clone returns a deep copy.
func (mx Matrix) Clone() Matrix {
	out := make(Matrix, len(mx))
	for i, row := range mx {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Validate checks that the matrix is square and every cell is finite and
// within [-1, 1].
func (mx Matrix) Validate() error {
	m := len(mx)
	for i, row := range mx {
		if len(row) != m {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalid, i, len(row), m)
		}
		for j, v := range row {
			if math.IsNaN(v) || v < -1 || v > 1 {
				return fmt.Errorf("%w: cell [%d][%d] = %g outside [-1, 1]", ErrInvalid, i, j, v)
			}
		}
	}
	return nil
}

// Save writes the matrix to filename as JSON.
func (mx Matrix) Save(filename string) error {
	data, err := json.MarshalIndent(mx, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// Load reads a JSON matrix written by Save and validates it.
func Load(filename string) (Matrix, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var mx Matrix
	if err := json.Unmarshal(data, &mx); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalid, filename, err)
	}
	if err := mx.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return mx, nil
}
