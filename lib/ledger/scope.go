package ledger

// OwnerLookup resolves an identity to a known owner.
type OwnerLookup interface {
	LookupOwner(pubkey string) (Owner, bool)
}

// OwnerSet is an OwnerLookup backed by a slice of owners.
type OwnerSet map[string]Owner

func NewOwnerSet(owners []Owner) OwnerSet {
	set := make(OwnerSet, len(owners))
	for _, o := range owners {
		set[o.Pubkey] = o
	}
	return set
}

func (s OwnerSet) LookupOwner(pubkey string) (Owner, bool) {
	o, ok := s[pubkey]
	return o, ok
}

type ScopeKind int

const (
	// ScopeNone is the scope of an unauthenticated or unknown caller; it sees nothing.
	ScopeNone ScopeKind = iota
	ScopeOwn
	ScopePlatform
)

// Scope is the set of relays and orders a caller may view.
type Scope struct {
	Kind   ScopeKind
	Pubkey string
}

// ResolveScope selects the scope of caller. An empty caller pubkey or one
// that owners does not know gets the empty scope.
func ResolveScope(caller string, owners OwnerLookup) Scope {
	if caller == "" || owners == nil {
		return Scope{Kind: ScopeNone}
	}
	owner, ok := owners.LookupOwner(caller)
	if !ok {
		return Scope{Kind: ScopeNone}
	}
	if owner.IsAdmin {
		return Scope{Kind: ScopePlatform, Pubkey: caller}
	}
	return Scope{Kind: ScopeOwn, Pubkey: caller}
}

func (s Scope) Authenticated() bool {
	return s.Kind != ScopeNone
}

func (s Scope) IsAdmin() bool {
	return s.Kind == ScopePlatform
}

// Includes reports whether records owned by ownerPubkey are visible.
func (s Scope) Includes(ownerPubkey string) bool {
	switch s.Kind {
	case ScopePlatform:
		return true
	case ScopeOwn:
		return ownerPubkey == s.Pubkey
	}
	return false
}
