package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ouvidoria-ativa/internal/domain"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"OUV-2026", "OUV-2026"},
		{"100%", `100\%`},
		{"john_doe", `john\_doe`},
		{`C:\temp`, `C:\\temp`},
		{"%_", `\%\_`},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, escapeLike(tc.input), "input %q", tc.input)
	}
}

type fakeResult struct {
	affected int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }

func TestRequireRow(t *testing.T) {
	assert.NoError(t, requireRow(fakeResult{affected: 1}))
	assert.ErrorIs(t, requireRow(fakeResult{affected: 0}), domain.ErrNotFound)
}
