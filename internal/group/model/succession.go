package model

// SuccessionOutcome describes how an empty admin set is resolved.
type SuccessionOutcome struct {
	// DeleteGroup is true when the group must be destroyed.
	DeleteGroup bool
	// PromotedID is the member promoted to admin when DeleteGroup is false.
	PromotedID string
}

// ResolveSuccession decides what happens when the last administrator is
// removed. remaining holds the group's members with the departing admin
// already excluded.
//
// The delete rule, or an empty member set regardless of rule, destroys the
// group. The promote rule hands administration to the first remaining
// member in persisted order.
func ResolveSuccession(remaining IDList, rule LastAdminRule) SuccessionOutcome {
	if rule == LastAdminRuleDelete || len(remaining) == 0 {
		return SuccessionOutcome{DeleteGroup: true}
	}
	return SuccessionOutcome{PromotedID: remaining.First()}
}
