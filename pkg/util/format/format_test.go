package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", FormatBytes(512))
	require.Equal(t, "1KB", FormatBytes(1024))
	require.Equal(t, "1.50MB", FormatBytes(3*MB/2))
	require.Equal(t, "4GB", FormatBytes(4*GB))
}

func TestParseBytes(t *testing.T) {
	cases := map[string]uint64{
		"":       0,
		"100":    100,
		"100B":   100,
		"4kb":    4 * KB,
		"4MB":    4 * MB,
		"1.5 GB": 3 * GB / 2,
	}
	for in, expected := range cases {
		v, err := ParseBytes(in)
		require.NoError(t, err, in)
		require.Equal(t, expected, v, in)
	}

	for _, in := range []string{"abc", "-1MB", "MB"} {
		_, err := ParseBytes(in)
		require.Error(t, err, in)
	}
}
