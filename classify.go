package main

import "strings"

// classifyTracks derives the ordered audio track descriptors from a
// manifest. Streams keep their source order and absolute indices; a
// missing language tag becomes "und" and a missing title the empty
// string. Pure function: no audio streams yields an empty slice, never
// an error.
func classifyTracks(m manifest) []audioTrack {
	tracks := make([]audioTrack, 0, len(m.Streams))
	for _, s := range m.Streams {
		if !strings.EqualFold(s.CodecType, "audio") {
			continue
		}
		lang := strings.ToLower(strings.TrimSpace(s.Tags["language"]))
		if lang == "" {
			lang = "und"
		}
		tracks = append(tracks, audioTrack{
			Index:    s.Index,
			Language: lang,
			Title:    strings.TrimSpace(s.Tags["title"]),
			Codec:    s.CodecName,
			Channels: s.Channels,
		})
	}
	return tracks
}
