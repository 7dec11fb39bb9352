package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCompressionType(t *testing.T) {
	tests := []struct {
		in     string
		want   CompressionType
		wantOK bool
	}{
		{"", CompressionNone, true},
		{"none", CompressionNone, true},
		{"ZSTD", CompressionZstd, true},
		{"s2", CompressionS2, true},
		{"Lz4", CompressionLZ4, true},
		{"aklz", CompressionAKLZ, true},
		{"gzip", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCompressionType(tt.in)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
			if ok && tt.in != "" {
				require.Equal(t, tt.want, mustParse(t, got.String()))
			}
		})
	}

	require.Equal(t, "Unknown", CompressionType(0xFF).String())
}

func mustParse(t *testing.T, name string) CompressionType {
	t.Helper()

	ct, ok := ParseCompressionType(name)
	require.True(t, ok)

	return ct
}

func TestKindFromName(t *testing.T) {
	tests := []struct {
		name string
		want ContainerKind
	}{
		{"a099a_ep.enp", ContainerENP},
		{"A099A_EP.ENP", ContainerENP},
		{"ecinit001.bin", ContainerENP},
		{"epevent.evp", ContainerEVP},
		{"disc/ebinit007.dat", ContainerDAT},
		{"readme.txt", ContainerAuto},
		{"", ContainerAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, KindFromName(tt.name))
		})
	}
}

func TestContainerKind_String(t *testing.T) {
	require.Equal(t, "Auto", ContainerAuto.String())
	require.Equal(t, "ENP", ContainerENP.String())
	require.Equal(t, "EVP", ContainerEVP.String())
	require.Equal(t, "DAT", ContainerDAT.String())
	require.Equal(t, "Unknown", ContainerKind(9).String())
}
