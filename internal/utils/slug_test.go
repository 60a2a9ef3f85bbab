package utils

import (
    "strings"
    "testing"
)

func TestSlugify(t *testing.T) {
    cases := []struct {
        name string
        in   string
        want string // expected prefix before the random suffix
    }{
        {"simple", "Summer Gala", "summer-gala-"},
        {"punctuation", "Riya & Dev's Wedding!", "riya-dev-s-wedding-"},
        {"extra spaces", "  New   Year  ", "new-year-"},
        {"non-ascii only", "🎉🎉", "event-"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            got := Slugify(tc.in)
            if !strings.HasPrefix(got, tc.want) {
                t.Fatalf("Slugify(%q) = %q, want prefix %q", tc.in, got, tc.want)
            }
            if len(got) != len(tc.want)+6 {
                t.Fatalf("Slugify(%q) = %q, want 6-char suffix", tc.in, got)
            }
        })
    }
}

func TestSlugifyUnique(t *testing.T) {
    if Slugify("Gala") == Slugify("Gala") {
        t.Fatal("two slugs for the same name should differ")
    }
}

func TestReportFilename(t *testing.T) {
    cases := []struct{ in, want string }{
        {"Jane Doe", "Jane_Doe_details.pdf"},
        {"  Anil  Kumar Rao ", "Anil_Kumar_Rao_details.pdf"},
        {"Solo", "Solo_details.pdf"},
        {"   ", "guest_details.pdf"},
    }
    for _, tc := range cases {
        if got := ReportFilename(tc.in); got != tc.want {
            t.Errorf("ReportFilename(%q) = %q, want %q", tc.in, got, tc.want)
        }
    }
}
