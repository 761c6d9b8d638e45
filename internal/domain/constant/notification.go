package constant

// AuthorizationStatus is the user's decision about notification delivery.
type AuthorizationStatus int

const (
	// AuthorizationUndetermined means the user has not been asked yet.
	AuthorizationUndetermined AuthorizationStatus = iota // 0
	// AuthorizationAuthorized means notifications may be delivered.
	AuthorizationAuthorized // 1
	// AuthorizationDenied means the user declined or revoked permission.
	AuthorizationDenied // 2
)

func (s AuthorizationStatus) Int() int {
	return int(s)
}

func (s AuthorizationStatus) String() string {
	switch s {
	case AuthorizationAuthorized:
		return "authorized"
	case AuthorizationDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// ParseAuthorizationStatus is the inverse of String.
func ParseAuthorizationStatus(s string) (AuthorizationStatus, bool) {
	switch s {
	case "undetermined":
		return AuthorizationUndetermined, true
	case "authorized":
		return AuthorizationAuthorized, true
	case "denied":
		return AuthorizationDenied, true
	}
	return AuthorizationUndetermined, false
}

// AuthorizationOptions are the capabilities requested from the notification center.
type AuthorizationOptions uint

const (
	AuthorizeAlert AuthorizationOptions = 1 << iota
	AuthorizeSound
	AuthorizeList
)

// PresentationOptions decide how a fired reminder is surfaced in the foreground.
type PresentationOptions uint

const (
	PresentBanner PresentationOptions = 1 << iota
	PresentSound
	PresentList
)

// Has reports whether all bits of o are set.
func (p PresentationOptions) Has(o PresentationOptions) bool {
	return p&o == o
}
