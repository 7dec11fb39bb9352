package format

import "strings"

type (
	CompressionType uint8
	ContainerKind   uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
	CompressionAKLZ CompressionType = 0x5 // CompressionAKLZ represents the on-disc AKLZ sliding-window codec.

	ContainerAuto ContainerKind = 0x0 // ContainerAuto picks the variant from the file name.
	ContainerENP  ContainerKind = 0x1 // ContainerENP is a dynamic-header record container, possibly multi-segment.
	ContainerEVP  ContainerKind = 0x2 // ContainerEVP is a fixed-header record container with an event span.
	ContainerDAT  ContainerKind = 0x3 // ContainerDAT is a headerless single-record file.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	case CompressionAKLZ:
		return "AKLZ"
	default:
		return "Unknown"
	}
}

// ParseCompressionType maps a case-insensitive name to a CompressionType.
func ParseCompressionType(name string) (CompressionType, bool) {
	switch strings.ToLower(name) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	case "aklz":
		return CompressionAKLZ, true
	default:
		return 0, false
	}
}

func (k ContainerKind) String() string {
	switch k {
	case ContainerAuto:
		return "Auto"
	case ContainerENP:
		return "ENP"
	case ContainerEVP:
		return "EVP"
	case ContainerDAT:
		return "DAT"
	default:
		return "Unknown"
	}
}

// KindFromName infers the container variant from a file or segment name.
// Internal ".bin" segment names are ENP segments.
func KindFromName(name string) ContainerKind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".enp"), strings.HasSuffix(lower, ".bin"):
		return ContainerENP
	case strings.HasSuffix(lower, ".evp"):
		return ContainerEVP
	case strings.HasSuffix(lower, ".dat"):
		return ContainerDAT
	default:
		return ContainerAuto
	}
}
