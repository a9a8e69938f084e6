package check

// Family names one of the two check variants. Both share the Check
// interface and every piece of the engine; a family only labels which
// registry a check lives in.
type Family string

const (
	FamilyHealth    Family = "health"
	FamilyReadiness Family = "readiness"
)

func (f Family) String() string { return string(f) }
