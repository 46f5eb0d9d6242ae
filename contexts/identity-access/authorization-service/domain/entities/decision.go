package entities

// Action identifies an operation the system exposes. Every route handler
// names its action here; the policy table must carry an entry for each.
type Action string

const (
	ActionBallotCreate Action = "ballot.create"
	ActionBallotUpdate Action = "ballot.update"
	ActionBallotOpen   Action = "ballot.open"
	ActionBallotClose  Action = "ballot.close"
	ActionBallotRead   Action = "ballot.read"
	ActionBallotList   Action = "ballot.list"

	ActionVoteCast   Action = "vote.cast"
	ActionVoteRead   Action = "vote.read"
	ActionVoteList   Action = "vote.list"
	ActionVoteRemove Action = "vote.remove"

	ActionResultRead    Action = "result.read"
	ActionResultRefresh Action = "result.refresh"

	ActionProfileRead   Action = "profile.read"
	ActionProfileUpdate Action = "profile.update"
	ActionPrincipalRead Action = "principal.read"

	ActionComplaintFile    Action = "complaint.file"
	ActionComplaintRead    Action = "complaint.read"
	ActionComplaintList    Action = "complaint.list"
	ActionComplaintResolve Action = "complaint.resolve"
)

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleParty = "party"
	RoleVoter = "voter"
)

// PrincipalRef is the engine's view of the requester. ProfileID is the id of
// the principal's linked profile; empty for admins and anonymous callers.
type PrincipalRef struct {
	ID        string
	Role      string
	ProfileID string
	Anonymous bool
}

// Resource describes the target of an owner-scoped action. Owned reports
// whether the resource carries an owner at all; OwnerProfileID is the
// profile id the resource belongs to.
type Resource struct {
	Kind           string
	OwnerProfileID string
	Owned          bool
}

type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}
