package rbac

import (
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads roles from a document such as:
//
//	planner:
//	  permissions: ["project:write", "annualProgram:write"]
//	admin:
//	  permissions: ["*"]
//	  inherits: [planner]
//
// and builds an Authorizer from them.
func LoadYAML(r io.Reader) (*Authorizer, error) {
	var roles map[string]Role
	if err := yaml.NewDecoder(r).Decode(&roles); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrLoadRoles, err)
	}
	return NewAuthorizer(roles)
}

func LoadYAMLFile(path string) (*Authorizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrLoadRoles, err)
	}
	defer f.Close()
	return LoadYAML(f)
}
