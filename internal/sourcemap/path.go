package sourcemap

import "strings"

// RelativePath returns the path of to relative to the directory containing from. Both '/' and '\' separate components; the result always uses '/'.
//
// Example: RelativePath("dist/out.js", "src/in.js") == "../src/in.js".
func RelativePath(from, to string) string {
	fromParts := splitPath(from)
	toParts := splitPath(to)

	// Drop the file component of from.
	fromParts = fromParts[:len(fromParts)-1]

	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}

	var rel []string
	for range fromParts[common:] {
		rel = append(rel, "..")
	}
	rel = append(rel, toParts[common:]...)
	return strings.Join(rel, "/")
}

// Basename returns the final '/' or '\' separated component of p.
func Basename(p string) string {
	parts := splitPath(p)
	return parts[len(parts)-1]
}

func splitPath(p string) []string {
	return strings.Split(strings.ReplaceAll(p, `\`, "/"), "/")
}
