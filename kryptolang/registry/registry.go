// Package registry resolves collaborator services to network addresses.
package registry

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("registry: service not found")
	ErrUnknownRole = errors.New("registry: unknown role")
)

// Role names one of the collaborating services.
type Role string

const (
	RoleParser  Role = "parser"
	RoleLexicon Role = "lexicon"
	RoleGrammar Role = "grammar"
	RoleCrypto  Role = "crypto"
	RoleGateway Role = "gateway"
)

// Roles lists every known role in pipeline order, gateway last.
func Roles() []Role {
	return []Role{RoleParser, RoleLexicon, RoleGrammar, RoleCrypto, RoleGateway}
}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Endpoint is where a role can be reached.
// Meta is free-form; transports use it for things like the URL scheme.
type Endpoint struct {
	Role Role
	Addr string
	Meta map[string]string
}

// Resolver is a generic service lookup.
// Implementations can be backed by static config, DNS-SD, a control plane, etc.
type Resolver interface {
	Announce(ep Endpoint) error
	Lookup(role Role) (Endpoint, error)
	List() ([]Endpoint, error)
}
