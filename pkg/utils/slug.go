package utils

import (
	"fmt"
	"strings"
)

// Slugify lowercases s and collapses non-alphanumeric runs into hyphens.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// RoomSlug builds the unique slug for a room name + floor pair.
func RoomSlug(name string, floor int) string {
	return Slugify(fmt.Sprintf("%s-floor-%d", name, floor))
}
