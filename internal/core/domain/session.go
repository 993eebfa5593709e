package domain

// Session is the authenticated-identity state of one client instance.
type Session struct {
	User            *User  `json:"user"`
	Token           string `json:"-"`
	IsAuthenticated bool   `json:"is_authenticated"`
	IsLoading       bool   `json:"is_loading"`
}

// LoadingSession is the state of a client before its persisted token is resolved.
func LoadingSession() Session {
	return Session{IsLoading: true}
}

// AnonymousSession is the settled, signed-out state.
func AnonymousSession() Session {
	return Session{}
}

// AuthenticatedSession is the settled, signed-in state.
func AuthenticatedSession(user *User, token string) Session {
	return Session{
		User:            user,
		Token:           token,
		IsAuthenticated: user != nil && token != "",
	}
}

// HasPermission reports whether the session's user holds p.
// It is false whenever no user is present.
func (s Session) HasPermission(p Permission) bool {
	if s.User == nil {
		return false
	}
	return s.User.PermissionSet().Has(p)
}

// Clone copies the session including its user record.
func (s Session) Clone() Session {
	s.User = s.User.Clone()
	return s
}
