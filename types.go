package main

// Structures for parsing ffprobe JSON output.
type streamInfo struct {
	Index     int               `json:"index"`
	CodecName string            `json:"codec_name"`
	CodecType string            `json:"codec_type"`
	Channels  int               `json:"channels"`
	Tags      map[string]string `json:"tags"`
}

type formatInfo struct {
	Filename   string `json:"filename"`
	NBStreams  int    `json:"nb_streams"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
}

// manifest is the raw structured description of one container's streams.
// It lives only between probe and classification.
type manifest struct {
	Streams []streamInfo `json:"streams"`
	Format  formatInfo   `json:"format"`
}

// audioTrack is the classified, read-only view of one audio stream.
// Index is the absolute stream index within the container, not an
// audio-relative position.
type audioTrack struct {
	Index    int    `json:"index"`
	Language string `json:"language"`
	Title    string `json:"title"`
	Codec    string `json:"codec"`
	Channels int    `json:"channels"`
}

// trackSelection holds a file's keep/drop decision. Keep preserves
// source stream order; Drop is the complement within the file's audio
// indices. Computed once per file, never mutated.
type trackSelection struct {
	Keep []int
	Drop []int
}

// outcome is the terminal state of one file's processing, the unit the
// batch driver aggregates.
type outcome int

const (
	outcomeRemuxed outcome = iota
	outcomeSkippedFewTracks
	outcomeSkippedAmbiguous
	outcomeSkippedCached
	outcomeFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeRemuxed:
		return "remuxed"
	case outcomeSkippedFewTracks:
		return "skipped-few-tracks"
	case outcomeSkippedAmbiguous:
		return "skipped-no-english"
	case outcomeSkippedCached:
		return "skipped-cached"
	case outcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
