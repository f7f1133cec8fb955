package storefront

import "strings"

// DefaultRegions is the curated region priority list, ordered
// most-likely-to-succeed first. Apps published worldwide resolve on the
// first entry; regional exclusives fall through to later ones.
var DefaultRegions = []string{
	"us", "cn", "jp", "gb", "kr", "de", "fr", "ca", "au", "ru",
	"hk", "tw", "sg", "in", "br",
}

// regionNames maps region codes to display names. Codes absent from the
// table fall back to their uppercased form.
var regionNames = map[string]string{
	"us": "United States",
	"cn": "China",
	"jp": "Japan",
	"gb": "United Kingdom",
	"kr": "South Korea",
	"de": "Germany",
	"fr": "France",
	"ca": "Canada",
	"au": "Australia",
	"ru": "Russia",
	"hk": "Hong Kong",
	"tw": "Taiwan",
	"sg": "Singapore",
	"in": "India",
	"br": "Brazil",
}

// RegionName localizes a region code for display.
func RegionName(code string) string {
	if name, ok := regionNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
