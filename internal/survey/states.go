package survey

import "strings"

// stateNames maps US state abbreviations and DC spelling variants to full
// upper-case names. Full names map to themselves so NormalizeState is
// idempotent.
var stateNames = map[string]string{
	"AL": "ALABAMA", "AK": "ALASKA", "AZ": "ARIZONA", "AR": "ARKANSAS",
	"CA": "CALIFORNIA", "CO": "COLORADO", "CT": "CONNECTICUT", "DE": "DELAWARE",
	"FL": "FLORIDA", "GA": "GEORGIA", "HI": "HAWAII", "ID": "IDAHO",
	"IL": "ILLINOIS", "IN": "INDIANA", "IA": "IOWA", "KS": "KANSAS",
	"KY": "KENTUCKY", "LA": "LOUISIANA", "ME": "MAINE", "MD": "MARYLAND",
	"MA": "MASSACHUSETTS", "MI": "MICHIGAN", "MN": "MINNESOTA", "MS": "MISSISSIPPI",
	"MO": "MISSOURI", "MT": "MONTANA", "NE": "NEBRASKA", "NV": "NEVADA",
	"NH": "NEW HAMPSHIRE", "NJ": "NEW JERSEY", "NM": "NEW MEXICO", "NY": "NEW YORK",
	"NC": "NORTH CAROLINA", "ND": "NORTH DAKOTA", "OH": "OHIO", "OK": "OKLAHOMA",
	"OR": "OREGON", "PA": "PENNSYLVANIA", "RI": "RHODE ISLAND", "SC": "SOUTH CAROLINA",
	"SD": "SOUTH DAKOTA", "TN": "TENNESSEE", "TX": "TEXAS", "UT": "UTAH",
	"VT": "VERMONT", "VA": "VIRGINIA", "WA": "WASHINGTON", "WV": "WEST VIRGINIA",
	"WI": "WISCONSIN", "WY": "WYOMING",

	"DC": "DISTRICT OF COLUMBIA", "D.C.": "DISTRICT OF COLUMBIA",
	"WASHINGTON DC": "DISTRICT OF COLUMBIA", "WASHINGTON, DC": "DISTRICT OF COLUMBIA",
}

// NormalizeState upper-cases a state answer and expands abbreviations.
// Values that match neither an abbreviation nor a known variant pass through
// upper-cased, which keeps full state names intact.
func NormalizeState(state string) string {
	upper := strings.ToUpper(strings.TrimSpace(state))
	if full, ok := stateNames[upper]; ok {
		return full
	}
	return upper
}
