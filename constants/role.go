package constants

import "strings"

// PartyRole identifies a party's role on a procurement document.
type PartyRole string

const (
	RoleIssuer    PartyRole = "issuer"
	RoleRecipient PartyRole = "recipient"
	RoleBuyer     PartyRole = "buyer"
	RoleSupplier  PartyRole = "supplier"
	RoleUnknown   PartyRole = "unknown"
)

// ParsePartyRole maps free-form input to a PartyRole, defaulting to RoleUnknown.
func ParsePartyRole(s string) PartyRole {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "issuer", "from", "seller":
		return RoleIssuer
	case "recipient", "to":
		return RoleRecipient
	case "buyer", "client", "purchaser":
		return RoleBuyer
	case "supplier", "vendor", "contractor":
		return RoleSupplier
	default:
		return RoleUnknown
	}
}
