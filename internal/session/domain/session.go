package domain

type (
	UserID int64

	// AccessToken is a short-lived bearer credential, it is kept in memory only.
	AccessToken string

	User struct {
		ID            UserID
		Email         string
		EmailVerified bool
	}

	// Session is a snapshot of the client authentication state.
	// User and AccessToken are either both set or both empty.
	Session struct {
		User        *User
		AccessToken AccessToken
		IsLoading   bool
	}

	State int
)

const (
	StateInit State = iota
	StateAuthenticated
	StateAnonymous
)

func (s Session) State() State {
	switch {
	case s.IsLoading:
		return StateInit
	case s.User != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.AccessToken != ""
}

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
