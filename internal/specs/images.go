package specs

import "strings"

// Image URLs are stored as one comma-joined string column.

func SplitImageURLs(stored string) []string {
	if stored == "" {
		return nil
	}
	var urls []string
	for _, part := range strings.Split(stored, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}

func JoinImageURLs(urls []string) string {
	return strings.Join(urls, ",")
}

// MergeImageURLs unions the explicitly kept URLs with newly uploaded ones,
// preserving order and dropping duplicates.
func MergeImageURLs(kept, uploaded []string) []string {
	seen := make(map[string]struct{}, len(kept)+len(uploaded))
	var merged []string
	for _, url := range append(append([]string{}, kept...), uploaded...) {
		if _, dup := seen[url]; dup || url == "" {
			continue
		}
		seen[url] = struct{}{}
		merged = append(merged, url)
	}
	return merged
}

// DroppedImageURLs returns the URLs present in the old set but absent from
// the new one; their storage objects are candidates for best-effort cleanup.
func DroppedImageURLs(old, new []string) []string {
	keep := make(map[string]struct{}, len(new))
	for _, url := range new {
		keep[url] = struct{}{}
	}
	var dropped []string
	for _, url := range old {
		if _, ok := keep[url]; !ok {
			dropped = append(dropped, url)
		}
	}
	return dropped
}
