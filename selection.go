package main

import "strings"

// Language codes accepted as English during the tag phase.
var englishCodes = map[string]struct{}{
	"en":      {},
	"eng":     {},
	"english": {},
}

// Substrings accepted as English evidence during the title phase. Matched
// without word boundaries, so "eng" also hits titles like "Engine Room" -
// a known limitation of the heuristic, kept permissive on purpose.
var englishTitleHints = []string{"english", "eng"}

// selectEnglish decides which audio tracks to retain. Tag evidence wins
// outright: if any track carries a recognized English language code, the
// tag-matched set is final and titles are never consulted. Only when no
// tag matches does the title heuristic run. Multiple matches are all
// kept (e.g. stereo and 5.1 English mixes). An empty Keep set is the
// ambiguous case the caller routes to the audit log.
//
// The caller handles files with at most one audio track before invoking
// the policy; rewriting those is pointless.
func selectEnglish(tracks []audioTrack) trackSelection {
	var sel trackSelection

	for _, t := range tracks {
		if _, ok := englishCodes[strings.ToLower(t.Language)]; ok {
			sel.Keep = append(sel.Keep, t.Index)
		}
	}

	if len(sel.Keep) == 0 {
		for _, t := range tracks {
			if titleSuggestsEnglish(t.Title) {
				sel.Keep = append(sel.Keep, t.Index)
			}
		}
	}

	kept := make(map[int]struct{}, len(sel.Keep))
	for _, idx := range sel.Keep {
		kept[idx] = struct{}{}
	}
	for _, t := range tracks {
		if _, ok := kept[t.Index]; !ok {
			sel.Drop = append(sel.Drop, t.Index)
		}
	}
	return sel
}

func titleSuggestsEnglish(title string) bool {
	title = strings.ToLower(title)
	for _, hint := range englishTitleHints {
		if strings.Contains(title, hint) {
			return true
		}
	}
	return false
}
