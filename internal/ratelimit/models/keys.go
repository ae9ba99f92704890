package models

import "strings"

const keyPrefix = "georef:ratelimit:"

// SanitizeKeySegment escapes the key delimiter so a client-controlled segment
// cannot spill into an adjacent bucket. IPv6 addresses contain ':' and are
// rewritten too.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// IPKey is the bucket key for a client address.
func IPKey(ip string) string {
	return keyPrefix + "ip:" + SanitizeKeySegment(ip)
}
