package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Code
		wantErr bool
	}{
		{name: "valid low bound", in: "10000", want: 10000},
		{name: "valid high bound", in: "99999", want: 99999},
		{name: "valid middle", in: "54321", want: 54321},
		{name: "too short", in: "123", wantErr: true},
		{name: "too long", in: "100000", wantErr: true},
		{name: "non numeric", in: "abcde", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "leading zero", in: "09999", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseCode(tc.in)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCode_Valid(t *testing.T) {
	assert.True(t, Code(10000).Valid())
	assert.True(t, Code(99999).Valid())
	assert.False(t, Code(9999).Valid())
	assert.False(t, Code(100000).Valid())
	assert.False(t, Code(0).Valid())
}
