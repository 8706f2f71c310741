package constants

import "strings"

// Incoterm is an ICC delivery term code.
type Incoterm string

const (
	IncotermEXW Incoterm = "EXW" // ex works
	IncotermFCA Incoterm = "FCA" // free carrier
	IncotermFAS Incoterm = "FAS" // free alongside ship
	IncotermFOB Incoterm = "FOB" // free on board
	IncotermCFR Incoterm = "CFR" // cost and freight
	IncotermCIF Incoterm = "CIF" // cost, insurance and freight
	IncotermCPT Incoterm = "CPT" // carriage paid to
	IncotermCIP Incoterm = "CIP" // carriage and insurance paid to
	IncotermDAP Incoterm = "DAP" // delivered at place
	IncotermDPU Incoterm = "DPU" // delivered at place unloaded
	IncotermDDP Incoterm = "DDP" // delivered duty paid
)

// Incoterms is the fixed dictionary matched against delivery language.
var Incoterms = []Incoterm{
	IncotermEXW, IncotermFCA, IncotermFAS, IncotermFOB, IncotermCFR,
	IncotermCIF, IncotermCPT, IncotermCIP, IncotermDAP, IncotermDPU, IncotermDDP,
}

// ParseIncoterm returns the matching Incoterm and true, or "" and false.
func ParseIncoterm(s string) (Incoterm, bool) {
	u := Incoterm(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range Incoterms {
		if t == u {
			return t, true
		}
	}
	return "", false
}
