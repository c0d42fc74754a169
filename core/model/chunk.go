package model

type Chunk struct {
	Index int    // 1-based sequence index
	Path  string // chunk file path on disk
	Size  int    // payload size in bytes, before encoding
}
