package types

import "fmt"

// Scope is an OAuth permission requested during authorization.
type Scope int

const (
	ScopeIdentity Scope = iota
	ScopeEdit
	ScopeFlair
	ScopeHistory
	ScopeModConfig
	ScopeModFlair
	ScopeModLog
	ScopeModPosts
	ScopeModWiki
	ScopeMySubreddits
	ScopePrivateMessages
	ScopeRead
	ScopeReport
	ScopeSave
	ScopeSubmit
	ScopeSubscribe
	ScopeVote
	ScopeWikiEdit
	ScopeWikiRead
)

// scopeValues holds Reddit's scope strings, indexed by Scope.
var scopeValues = [...]string{
	ScopeIdentity:        "identity",
	ScopeEdit:            "edit",
	ScopeFlair:           "flair",
	ScopeHistory:         "history",
	ScopeModConfig:       "modconfig",
	ScopeModFlair:        "modflair",
	ScopeModLog:          "modlog",
	ScopeModPosts:        "modposts",
	ScopeModWiki:         "modwiki",
	ScopeMySubreddits:    "mysubreddits",
	ScopePrivateMessages: "privatemessages",
	ScopeRead:            "read",
	ScopeReport:          "report",
	ScopeSave:            "save",
	ScopeSubmit:          "submit",
	ScopeSubscribe:       "subscribe",
	ScopeVote:            "vote",
	ScopeWikiEdit:        "wikiedit",
	ScopeWikiRead:        "wikiread",
}

// Value returns the provider string for the scope, or an empty string if s
// is not a declared scope.
func (s Scope) Value() string {
	if s < 0 || int(s) >= len(scopeValues) {
		return ""
	}
	return scopeValues[s]
}

// Valid reports whether s is a declared scope.
func (s Scope) Valid() bool {
	return s.Value() != ""
}

func (s Scope) String() string {
	if v := s.Value(); v != "" {
		return v
	}
	return fmt.Sprintf("Scope(%d)", int(s))
}

// AllScopes returns every declared scope in declaration order.
func AllScopes() []Scope {
	scopes := make([]Scope, len(scopeValues))
	for i := range scopeValues {
		scopes[i] = Scope(i)
	}
	return scopes
}

// ParseScope maps a provider string such as "read" to its Scope.
func ParseScope(s string) (Scope, error) {
	for i, v := range scopeValues {
		if v == s {
			return Scope(i), nil
		}
	}
	return 0, fmt.Errorf("unknown scope %q", s)
}
