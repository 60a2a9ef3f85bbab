package utils

import (
    "strings"
    "unicode"
)

// Slugify turns an event name into a URL-safe slug: lowercase ASCII
// letters and digits, runs of anything else collapsed into single
// hyphens. A short random suffix keeps slugs unique across events
// with the same name.
func Slugify(name string) string {
    var b strings.Builder
    lastHyphen := true // suppress a leading hyphen
    for _, r := range strings.ToLower(strings.TrimSpace(name)) {
        if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
            b.WriteRune(r)
            lastHyphen = false
            continue
        }
        if !lastHyphen {
            b.WriteByte('-')
            lastHyphen = true
        }
    }
    s := strings.TrimSuffix(b.String(), "-")
    if s == "" {
        s = "event"
    }
    suffix, err := randomHex(3) // 6 hex chars
    if err != nil {
        return s
    }
    return s + "-" + suffix
}

// ReportFilename derives the download name for a guest's document
// report: whitespace in the guest name collapses to underscores.
func ReportFilename(guestName string) string {
    fields := strings.FieldsFunc(guestName, unicode.IsSpace)
    base := strings.Join(fields, "_")
    if base == "" {
        base = "guest"
    }
    return base + "_details.pdf"
}
