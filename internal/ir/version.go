package ir

// Version constants for the tool and its binary format.
const (
	// ToolVersion is the platymap release version.
	ToolVersion = "0.1.0"

	// FormatVersion identifies the binary layout handled by the codec.
	// Little-endian words, sentinel-terminated.
	FormatVersion = "1"
)
