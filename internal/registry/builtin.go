package registry

import (
	"fmt"

	"github.com/vovakirdan/tui-pinball/internal/scenario"
)

func init() {
	scenarios, err := scenario.BuiltinLoader().LoadAll()
	if err != nil {
		panic(fmt.Sprintf("registry: loading builtin scenarios: %v", err))
	}
	for _, s := range scenarios {
		Register(s.ID, factoryFor(s))
	}
}

// factoryFor returns a Factory handing out deep copies of s.
func factoryFor(s scenario.Scenario) Factory {
	return func() scenario.Scenario {
		return s.Clone()
	}
}
