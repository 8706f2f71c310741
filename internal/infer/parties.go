package infer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Knotcreativ/kraftd-extract/constants"
	"github.com/Knotcreativ/kraftd-extract/internal/entity"
)

var (
	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-]?)?(?:\(\d{1,4}\)[\s\-]?)?\d{3}[\s\-]?\d{3,4}[\s\-]?\d{0,4}`)
)

// how far around a party's name we re-scan for contact details
const contactWindow = 300

// inferParties backfills missing email/phone for already-identified parties
// by re-scanning the text near each party's name.
type inferParties struct{}

func (r *inferParties) Name() string { return "infer_parties" }

func (r *inferParties) Apply(doc *entity.CanonicalDocument, text string) []entity.InferenceSignal {
	var signals []entity.InferenceSignal
	lower := strings.ToLower(text)

	// fixed role order keeps the signal list deterministic across runs
	for _, role := range []constants.PartyRole{
		constants.RoleIssuer, constants.RoleRecipient, constants.RoleBuyer, constants.RoleSupplier,
	} {
		party := doc.Parties[role]
		if party == nil || (party.Email != nil && party.Phone != nil) {
			continue
		}
		idx := strings.Index(lower, strings.ToLower(party.Name))
		if idx < 0 {
			continue
		}
		start := idx - contactWindow/2
		if start < 0 {
			start = 0
		}
		end := idx + len(party.Name) + contactWindow
		if end > len(text) {
			end = len(text)
		}
		window := text[start:end]

		if party.Email == nil {
			if email := emailRe.FindString(window); email != "" {
				party.Email = &email
				signals = append(signals, entity.InferenceSignal{
					RuleName:      r.Name(),
					FieldName:     fmt.Sprintf("parties.%s.email", role),
					InferredValue: email,
					Confidence:    0.7,
					Evidence:      fmt.Sprintf("found near party name %q", party.Name),
				})
			}
		}
		if party.Phone == nil {
			if phone := findPhone(window); phone != "" {
				party.Phone = &phone
				signals = append(signals, entity.InferenceSignal{
					RuleName:      r.Name(),
					FieldName:     fmt.Sprintf("parties.%s.phone", role),
					InferredValue: phone,
					Confidence:    0.6,
					Evidence:      fmt.Sprintf("found near party name %q", party.Name),
				})
			}
		}
	}
	return signals
}

// findPhone needs enough digits to separate phone numbers from quantities.
func findPhone(window string) string {
	for _, cand := range phoneRe.FindAllString(window, -1) {
		digits := 0
		for _, c := range cand {
			if c >= '0' && c <= '9' {
				digits++
			}
		}
		if digits >= 8 {
			return strings.TrimSpace(cand)
		}
	}
	return ""
}
