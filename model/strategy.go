package model

type Strategy uint8

const (
	FirstFit Strategy = iota
	Balanced
	DropExcess
)

var strategyNames = map[Strategy]string{
	FirstFit:   "first_fit",
	Balanced:   "balanced",
	DropExcess: "drop_excess",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

func StrategyNames() []string {
	return []string{Balanced.String(), DropExcess.String(), FirstFit.String()}
}
