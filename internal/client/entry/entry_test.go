package entry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickshcc/quicksh/internal/client/models"
)

func TestInputDigit_AdvancesFocus(t *testing.T) {
	e := New()

	e.InputDigit(1, '5')

	assert.Equal(t, byte('5'), e.Cell(1))
	assert.Equal(t, 2, e.Focus())
}

func TestInputDigit_ZeroInFirstCell_ClearsAndKeepsFocus(t *testing.T) {
	e := New()

	e.InputDigit(1, '0')

	assert.Equal(t, byte(0), e.Cell(1))
	assert.Equal(t, 1, e.Focus())
}

func TestInputDigit_ZeroInLaterCell_IsAccepted(t *testing.T) {
	e := New()
	e.InputDigit(1, '1')

	e.InputDigit(2, '0')

	assert.Equal(t, byte('0'), e.Cell(2))
	assert.Equal(t, 3, e.Focus())
}

func TestInputDigit_NonDigit_ClearsCell(t *testing.T) {
	e := New()
	e.InputDigit(1, '7')
	e.InputDigit(2, 'x')

	assert.Equal(t, byte(0), e.Cell(2))
	assert.Equal(t, 2, e.Focus())
}

func TestInputDigit_LastCell_KeepsFocus(t *testing.T) {
	e := New()
	for i, ch := range []byte{'1', '2', '3', '4'} {
		e.InputDigit(i+1, ch)
	}

	e.InputDigit(5, '5')

	assert.Equal(t, 5, e.Focus())
}

func TestBackspace_NonEmptyCell_ClearsInPlace(t *testing.T) {
	e := New()
	e.InputDigit(1, '9')
	e.InputDigit(2, '8')
	require.Equal(t, 3, e.Focus())

	e.Backspace(3)
	require.Equal(t, 2, e.Focus(), "empty cell retreats focus")

	e.Backspace(2)
	assert.Equal(t, byte(0), e.Cell(2), "non-empty cell clears in place")
	assert.Equal(t, 2, e.Focus())
}

func TestBackspace_EmptyCell_RetreatsFocus(t *testing.T) {
	e := New()
	e.InputDigit(1, '9')
	require.Equal(t, 2, e.Focus())

	e.Backspace(2)

	assert.Equal(t, 1, e.Focus())
}

func TestBackspace_FirstCellEmpty_IsNoOp(t *testing.T) {
	e := New()

	e.Backspace(1)

	assert.Equal(t, 1, e.Focus())
	assert.Equal(t, byte(0), e.Cell(1))
}

func TestCompose_AllCellsFilled(t *testing.T) {
	e := New()
	for i, ch := range []byte{'5', '4', '3', '2', '1'} {
		e.InputDigit(i+1, ch)
	}

	code, ok := e.Compose()
	require.True(t, ok)
	assert.Equal(t, models.Code(54321), code)
}

func TestCompose_PartialFill_ReportsAbsent(t *testing.T) {
	e := New()
	e.InputDigit(1, '1')
	e.InputDigit(2, '2')

	_, ok := e.Compose()
	assert.False(t, ok)
}

func TestReset_ClearsCellsAndFocus(t *testing.T) {
	e := New()
	for i, ch := range []byte{'5', '4', '3', '2', '1'} {
		e.InputDigit(i+1, ch)
	}

	e.Reset()

	assert.Equal(t, 1, e.Focus())
	for i := 1; i <= Cells; i++ {
		assert.Equal(t, byte(0), e.Cell(i))
	}
}

func TestPrefill(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		wantErr error
	}{
		{name: "valid", segment: "43210"},
		{name: "too short", segment: "123", wantErr: ErrCodeLength},
		{name: "too long", segment: "123456", wantErr: ErrCodeLength},
		{name: "non numeric", segment: "12a45", wantErr: ErrCodeNotNumeric},
		{name: "out of range", segment: "09999", wantErr: ErrCodeLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := New()
			err := e.Prefill(tc.segment)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				for i := 1; i <= Cells; i++ {
					assert.Equal(t, byte(0), e.Cell(i), "cells must stay untouched")
				}
				return
			}
			require.NoError(t, err)
			code, ok := e.Compose()
			require.True(t, ok)
			assert.Equal(t, models.Code(43210), code)
		})
	}
}
