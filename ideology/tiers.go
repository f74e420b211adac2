package ideology

// tier is one labeled band of an axis. The seven tiers per axis partition
// [1,100] with no gaps or overlaps.
type tier struct {
	min, max int
	label    string
}

var axisTiers = map[string][]tier{
	"xenophobia": {
		{90, 100, "Genocidal"},
		{75, 89, "Paranoid"},
		{60, 74, "Highly Suspicious"},
		{40, 59, "Cautious"},
		{25, 39, "Open-Minded"},
		{10, 24, "Welcoming"},
		{1, 9, "Naive"},
	},
	"diplomacy": {
		{90, 100, "Master Negotiator"},
		{75, 89, "Skilled Diplomat"},
		{60, 74, "Diplomatic"},
		{40, 59, "Adequate"},
		{25, 39, "Poor"},
		{10, 24, "Terrible"},
		{1, 9, "Incapable"},
	},
	"militancy": {
		{90, 100, "Bloodthirsty"},
		{75, 89, "Warmonger"},
		{60, 74, "Hawkish"},
		{40, 59, "Pragmatic"},
		{25, 39, "Dovish"},
		{10, 24, "Pacifist"},
		{1, 9, "Absolute Pacifist"},
	},
	"expansionism": {
		{90, 100, "Lebensraum"},
		{75, 89, "Manifest Destiny"},
		{60, 74, "Expansionist"},
		{40, 59, "Steady Growth"},
		{25, 39, "Conservative"},
		{10, 24, "Isolationist"},
		{1, 9, "Fortress World"},
	},
	"determination": {
		{90, 100, "Fanatical"},
		{75, 89, "Unbreakable"},
		{60, 74, "Resolute"},
		{40, 59, "Pragmatic"},
		{25, 39, "Flexible"},
		{10, 24, "Defeatist"},
		{1, 9, "Coward"},
	},
	"trade": {
		{90, 100, "Merchant Republic"},
		{75, 89, "Free Trader"},
		{60, 74, "Pro-Trade"},
		{40, 59, "Selective"},
		{25, 39, "Protectionist"},
		{10, 24, "Autarky"},
		{1, 9, "Hermit Kingdom"},
	},
}

// TierLabel returns the descriptive label for an axis value, e.g.
// TierLabel("xenophobia", 95) == "Genocidal". Returns "Unknown" for
// unrecognized axes or out-of-range values; validated input never hits it.
func TierLabel(axis string, value int) string {
	for _, t := range axisTiers[axis] {
		if value >= t.min && value <= t.max {
			return t.label
		}
	}
	return "Unknown"
}
