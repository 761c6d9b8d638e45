package constant

// Gender options used by Patient.
type Gender string

const (
	GenderFemale      Gender = "female"
	GenderMale        Gender = "male"
	GenderOther       Gender = "other"
	GenderUndisclosed Gender = "undisclosed"
)

// ParseGender maps a raw value to a Gender, defaulting to undisclosed.
func ParseGender(raw string) Gender {
	switch g := Gender(raw); g {
	case GenderFemale, GenderMale, GenderOther, GenderUndisclosed:
		return g
	}
	return GenderUndisclosed
}

// Label returns the human readable label.
func (g Gender) Label() string {
	switch g {
	case GenderFemale:
		return "Female"
	case GenderMale:
		return "Male"
	case GenderOther:
		return "Other"
	default:
		return "Prefer not to say"
	}
}
