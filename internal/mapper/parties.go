package mapper

import (
	"regexp"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

// Role-introducing anchors. The first anchor that matches a role wins;
// at most one party per role.
var partyAnchors = []struct {
	role constants.PartyRole
	re   *regexp.Regexp
}{
	{constants.RoleIssuer, regexp.MustCompile(`(?im)^\s*(?:from\s*:|seller\s*:|issued\s+by\s*:?)\s*(.{2,80}?)\s*$`)},
	{constants.RoleRecipient, regexp.MustCompile(`(?im)^\s*(?:to|attention|attn)\s*:\s*(.{2,80}?)\s*$`)},
	{constants.RoleBuyer, regexp.MustCompile(`(?im)^\s*(?:buyer|client|purchaser)\s*:\s*(.{2,80}?)\s*$`)},
	{constants.RoleSupplier, regexp.MustCompile(`(?im)^\s*(?:supplier|vendor|contractor)\s*:\s*(.{2,80}?)\s*$`)},
}

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe   = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-]?)?(?:\(\d{1,4}\)[\s\-]?)?\d{3}[\s\-]?\d{3,4}[\s\-]?\d{0,4}`)
	addressRe = regexp.MustCompile(`(?im)^.*\b(?:street|st\.|road|rd\.|avenue|ave\.|building|district|p\.?\s?o\.?\s?box|floor|tower|city)\b.*$`)
)

// partyWindow is how far past the anchor we look for contact details.
const partyWindow = 240

// extractParties scans for role anchors and associates the nearest following
// name/contact block. Email and phone are matched independently so a party
// can carry partial contact info.
func extractParties(doc *entity.CanonicalDocument, text string) {
	for _, anchor := range partyAnchors {
		if _, ok := doc.Parties[anchor.role]; ok {
			continue
		}
		loc := anchor.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		name := strings.TrimSpace(text[loc[2]:loc[3]])
		name = strings.Trim(name, ",;|")
		if name == "" {
			continue
		}

		party := &entity.Party{Name: name}

		end := loc[1] + partyWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[loc[0]:end]
		if email := emailRe.FindString(window); email != "" {
			party.Email = &email
		}
		if phone := findPhone(window); phone != "" {
			party.Phone = &phone
		}
		if addr := addressRe.FindString(window); addr != "" {
			addr = strings.TrimSpace(addr)
			party.Address = &addr
		}
		doc.Parties[anchor.role] = party
	}
}

// findPhone looks for a phone-shaped token with enough digits to be real;
// plain quantities and years should not pass.
func findPhone(window string) string {
	for _, cand := range phoneRe.FindAllString(window, -1) {
		digits := 0
		for _, r := range cand {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 8 {
			return strings.TrimSpace(cand)
		}
	}
	return ""
}
