package dialstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NewDialog(t *testing.T) {
	p := NewParser("920", "1802")

	tests := []struct {
		name    string
		raw     string
		want    []string
		wantErr error
	}{
		{
			name: "full dial string with selections",
			raw:  "*920*1802*1*2#",
			want: []string{"1", "2"},
		},
		{
			name: "no selections",
			raw:  "*920*1802#",
			want: []string{},
		},
		{
			name: "single selection",
			raw:  "*920*1802*3#",
			want: []string{"3"},
		},
		{
			name: "missing trailing hash tolerated",
			raw:  "*920*1802*1",
			want: []string{"1"},
		},
		{
			name:    "missing leading star",
			raw:     "920*1802*1#",
			wantErr: ErrMalformed,
		},
		{
			name:    "wrong short code",
			raw:     "*111*1802*1#",
			wantErr: ErrServiceMismatch,
		},
		{
			name:    "wrong extension",
			raw:     "*920*9999*1#",
			wantErr: ErrServiceMismatch,
		},
		{
			name:    "short code only",
			raw:     "*920#",
			wantErr: ErrMalformed,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: ErrMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.raw, true)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Continuation(t *testing.T) {
	p := NewParser("920", "1802")

	got, err := p.Parse("2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, got)

	// Continuation input is passed through untouched, even when it looks
	// like a dial string.
	got, err = p.Parse("*920*1802*1#", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"*920*1802*1#"}, got)
}
