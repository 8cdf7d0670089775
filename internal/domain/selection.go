package domain

import "strings"

// All is the wildcard selection value.
const All = "All"

// Selection is the (region, zone, woreda) triple chosen in the dropdowns.
type Selection struct {
	Region string `json:"region"`
	Zone   string `json:"zone"`
	Woreda string `json:"woreda"`
}

// Matches reports whether p satisfies every concrete field of s.
func (s Selection) Matches(p Point) bool {
	return matchField(s.Region, p.Region) &&
		matchField(s.Zone, p.Zone) &&
		matchField(s.Woreda, p.Woreda)
}

func (s Selection) withWildcards() Selection {
	return Selection{
		Region: wildcardIfEmpty(s.Region),
		Zone:   wildcardIfEmpty(s.Zone),
		Woreda: wildcardIfEmpty(s.Woreda),
	}
}

// IsWildcard reports whether v places no constraint on its field.
func IsWildcard(v string) bool {
	return v == "" || v == All
}

func matchField(want, got string) bool {
	return IsWildcard(want) || want == got
}

func wildcardIfEmpty(v string) string {
	if v == "" {
		return All
	}
	return v
}

// Level identifies one of the cascading controls.
type Level int

const (
	LevelNone Level = iota
	LevelRegion
	LevelZone
	LevelWoreda
)

// ParseLevel maps a control name ("region", "zone", "woreda") to its Level.
// Unknown names map to LevelNone.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "region":
		return LevelRegion
	case "zone":
		return LevelZone
	case "woreda":
		return LevelWoreda
	default:
		return LevelNone
	}
}

func (l Level) String() string {
	switch l {
	case LevelRegion:
		return "region"
	case LevelZone:
		return "zone"
	case LevelWoreda:
		return "woreda"
	default:
		return ""
	}
}

// Resolve resets every control downstream of changed to All.
func Resolve(sel Selection, changed Level) Selection {
	switch changed {
	case LevelRegion:
		sel.Zone, sel.Woreda = All, All
	case LevelZone:
		sel.Woreda = All
	}
	return sel
}
