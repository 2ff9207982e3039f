// Package present holds pure display helpers derived from catalog records.
package present

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Price formats a nightly rate in rupees with english digit grouping.
func Price(rupees int64) string {
	return "₹" + printer.Sprintf("%d", rupees)
}

// Count renders "1 bedroom" / "6 bedrooms".
func Count(n int, singular, plural string) string {
	word := plural
	if n == 1 {
		word = singular
	}
	return strconv.Itoa(n) + " " + word
}

// Paragraphs splits a description on blank lines. Single newlines stay
// inside a paragraph.
func Paragraphs(desc string) []string {
	desc = strings.ReplaceAll(desc, "\r\n", "\n")
	var out []string
	for _, p := range strings.Split(desc, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// TelURI builds a tel: link, dropping the spacing used for display.
func TelURI(phone string) string {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayLocalPhone strips the international prefix for compact display,
// "+91 97392 83637" -> "97392 83637".
func DisplayLocalPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "+") {
		if i := strings.IndexByte(phone, ' '); i > 0 {
			return strings.TrimSpace(phone[i+1:])
		}
	}
	return phone
}

func WhatsAppURI(id string) string { return "https://wa.me/" + id }

// BookingLink returns the external booking url when one is configured.
func BookingLink(u *string) (string, bool) {
	if u == nil {
		return "", false
	}
	s := strings.TrimSpace(*u)
	return s, s != ""
}

// LocationsLabel is the features strip counter: "1 Premium Location".
func LocationsLabel(n int) string {
	if n == 1 {
		return "1 Premium Location"
	}
	return strconv.Itoa(n) + " Premium Locations"
}

// PropertiesSubtitle is the line under the "Our Properties" heading.
func PropertiesSubtitle(n int) string {
	if n == 1 {
		return "Discover our exclusive property"
	}
	return "Explore " + strconv.Itoa(n) + " handpicked luxury stays"
}
