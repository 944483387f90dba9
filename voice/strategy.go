package voice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsphweid/flattenmidi/model"
)

var (
	ErrNoVoices        = errors.New("voice count must be at least 1")
	ErrUnknownStrategy = errors.New("unknown strategy")
)

func ParseStrategy(name string) (model.Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "first_fit":
		return model.FirstFit, nil
	case "balanced":
		return model.Balanced, nil
	case "drop_excess":
		return model.DropExcess, nil
	}
	return 0, fmt.Errorf("%w %q, expected one of %v", ErrUnknownStrategy, name, model.StrategyNames())
}
