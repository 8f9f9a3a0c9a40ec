package asif

// Block layout constants
const (
	countPrefixSize = 4 // little-endian u32 samples-per-channel prefix
	maxBlockSamples = 1<<32 - 1
)

// Channel layouts
const (
	monoChannels   = 1
	stereoChannels = 2
)
