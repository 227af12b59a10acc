package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantPage int
		wantRest []string
		wantErr  bool
	}{
		{name: "no flag", args: []string{"jane"}, wantPage: 0, wantRest: []string{"jane"}},
		{name: "flag only", args: []string{"--page", "3"}, wantPage: 3, wantRest: []string{}},
		{name: "flag with args", args: []string{"--page", "2", "jane"}, wantPage: 2, wantRest: []string{"jane"}},
		{name: "flag after args", args: []string{"jane", "--page", "2"}, wantPage: 2, wantRest: []string{"jane"}},
		{name: "missing value", args: []string{"--page"}, wantErr: true},
		{name: "non-numeric", args: []string{"--page", "abc"}, wantErr: true},
		{name: "zero page", args: []string{"--page", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, rest, err := parsePageFlag(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantRest, rest)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "KES 1500.50", formatMoney(1500.5))
	assert.Equal(t, "KES 0.00", formatMoney(0))
}

func TestReadIntAndFloat(t *testing.T) {
	fio := &fakeIO{inputs: []string{"42", "", "abc", "3.5", "", "xyz"}}
	c := &Cli{io: fio}

	n, err := c.readInt("n: ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = c.readInt("n: ")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	_, err = c.readInt("n: ")
	require.Error(t, err)

	f, err := c.readFloat("f: ")
	require.NoError(t, err)
	assert.Equal(t, 3.5, f)

	f, err = c.readFloat("f: ")
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)

	_, err = c.readFloat("f: ")
	require.Error(t, err)
}
