package repository

import "encoding/json"

// Genres are stored as a JSON array in a TEXT column so the submitted order
// survives round trips. An empty or NULL column decodes to an empty slice.

func encodeGenres(genres []string) (string, error) {
	if genres == nil {
		genres = []string{}
	}
	b, err := json.Marshal(genres)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeGenres(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var genres []string
	if err := json.Unmarshal([]byte(raw), &genres); err != nil || genres == nil {
		return []string{}
	}
	return genres
}
