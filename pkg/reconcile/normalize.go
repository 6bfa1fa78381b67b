package reconcile

import "strings"

// spreadsheetArtifact is appended to integer IDs when a sheet stores them as floats.
const spreadsheetArtifact = ".0"

// nullIdentifier is how an absent identifier looks once it has been stringified upstream.
const nullIdentifier = "None"

// NormalizeLocalID normalizes an identifier read from a local grade sheet.
// Whitespace is trimmed and exactly one trailing ".0" is removed, so "123.0"
// and " 123 " both become "123" while "12.05" and "1.0.0" keep their interior dots.
func NormalizeLocalID(raw string) string {
	id := strings.TrimSpace(raw)
	id = strings.TrimSuffix(id, spreadsheetArtifact)
	return strings.TrimSpace(id)
}

// NormalizeRemoteID normalizes an identifier reported by the LMS. Remote IDs
// are already strings, so only whitespace is trimmed.
func NormalizeRemoteID(raw string) string {
	return strings.TrimSpace(raw)
}

// usableRemoteID reports whether a normalized remote identifier can be joined.
func usableRemoteID(id string) bool {
	return id != "" && id != nullIdentifier
}
