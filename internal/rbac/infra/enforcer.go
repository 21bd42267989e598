package infra

import (
	_ "embed"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// ModelText: sub = employee/role, dom = company_id, obj = resource, act = action.
//
//go:embed model.conf
var ModelText string

// NewEnforcer memakai model dari file kalau path diisi, selain itu model embedded.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	if modelPath != "" {
		return casbin.NewEnforcer(modelPath)
	}
	return NewEnforcerFromText(ModelText)
}

func NewEnforcerFromText(modelText string) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	return casbin.NewEnforcer(m)
}
