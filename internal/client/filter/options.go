package filter

// Option is a selectable filter value: the stored code plus its display
// label.
type Option struct {
	Value string
	Label string
}

// Canonical option lists for the categorical filters. Values are the
// stored codes the backend keeps on profiles.
var (
	// south-ashdod-ashkelon is the signup page's code for the same area
	// south-coast covers on the browse page; stored data can hold either.
	CityOptions = []Option{
		{"gush-dan", "Gush Dan (Tel Aviv / Ramat Gan / Holon / Bat Yam...)"},
		{"tel-aviv", "Tel Aviv (city)"},
		{"jerusalem-area", "Jerusalem area"},
		{"hasharon", "HaSharon (Herzliya / Raanana / Kfar Saba / Netanya)"},
		{"shfela", "HaShfela (Rishon / Rehovot / Ramla / Lod)"},
		{"haifa-krayot", "Haifa & Krayot"},
		{"north-galilee-golan", "North (Galilee / Golan)"},
		{"south-coast", "South coast (Ashdod / Ashkelon)"},
		{"south-ashdod-ashkelon", "South coast (Ashdod / Ashkelon)"},
		{"negev-beer-sheva", "Negev (Beer Sheva area)"},
		{"eilat-arava", "Eilat / Arava"},
		{"west-bank", "West Bank"},
		{"other-israel", "Other / Not sure"},
	}

	OrientationOptions = []Option{
		{"ace", "ace"},
		{"aro", "aro"},
		{"aroace", "aroace"},
		{"demi", "demi"},
		{"grey-asexual", "grey asexual"},
	}

	LookingForOptions = []Option{
		{"friendship", "friendship"},
		{"monogamy-romance", "monogamy romance"},
		{"qpr", "qpr"},
		{"polyamory-romance", "polyamory romance"},
	}

	GenderOptions = []Option{
		{"male", "male"},
		{"female", "female"},
		{"non-binary", "non binary"},
		{"other", "other"},
	}
)

// Label returns the display label for a stored code, falling back to the
// code itself.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Values returns just the stored codes of the option list.
func Values(options []Option) []string {
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = o.Value
	}
	return out
}
