package join

import "fmt"

// ActionType represents the kind of element work a partition implies.
type ActionType string

const (
	// ActionCreate creates an element for an entering datum.
	ActionCreate ActionType = "create"
	// ActionRefresh refreshes an element from its matched new datum.
	ActionRefresh ActionType = "refresh"
	// ActionRemove releases an element whose key left the data.
	ActionRemove ActionType = "remove"
)

// Action describes one planned element operation derived from a Result.
type Action struct {
	// Type specifies the operation to perform.
	Type ActionType `json:"type"`

	// Key is the formatted key of the affected entry.
	Key string `json:"key"`

	// Reason explains why this action is planned.
	Reason string `json:"reason"`
}

// Summary provides aggregate counts for a join pass.
type Summary struct {
	// Total is the number of keys touched by the pass (union of old and new).
	Total int `json:"total"`

	// Entering counts new-data items with no prior binding.
	Entering int `json:"entering"`

	// Updating counts bindings whose keys survived.
	Updating int `json:"updating"`

	// Exiting counts bindings whose keys left the data.
	Exiting int `json:"exiting"`
}

// Plan contains the planned actions and summary for a join pass. It is
// a presentation of a Result for reports and APIs; applying it is the
// caller's concern.
type Plan struct {
	// Actions contains planned element operations, entering first, then
	// updating, then exiting, each in partition order.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// PlanOf derives a deterministic action plan from a join result. Keys
// are formatted with fmt.Sprint so the plan is serializable regardless
// of the key type.
func PlanOf[K comparable, D, E any](res Result[K, D, E]) Plan {
	plan := Plan{
		Actions: make([]Action, 0, len(res.Entering)+len(res.Updating)+len(res.Exiting)),
		Summary: Summary{
			Total:    len(res.Entering) + len(res.Updating) + len(res.Exiting),
			Entering: len(res.Entering),
			Updating: len(res.Updating),
			Exiting:  len(res.Exiting),
		},
	}

	for _, e := range res.Entering {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionCreate,
			Key:    fmt.Sprint(e.Key),
			Reason: "no prior binding",
		})
	}
	for _, u := range res.Updating {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionRefresh,
			Key:    fmt.Sprint(u.Binding.Key),
			Reason: "key present in both passes",
		})
	}
	for _, b := range res.Exiting {
		plan.Actions = append(plan.Actions, Action{
			Type:   ActionRemove,
			Key:    fmt.Sprint(b.Key),
			Reason: "key absent from new data",
		})
	}

	return plan
}
