package services

import (
	"testing"

	"electra/contexts/identity-access/authorization-service/domain/entities"
)

func TestAdminBypassesEveryAction(t *testing.T) {
	admin := entities.PrincipalRef{ID: "p-admin", Role: entities.RoleAdmin}
	for _, action := range Actions() {
		if decision := Decide(admin, action, entities.Resource{}); !decision.Allowed {
			t.Fatalf("admin denied %s: %s", action, decision.Reason)
		}
	}
}

func TestPolicyIsTotalAndFailClosed(t *testing.T) {
	// Every decided action yields a definite answer for every role,
	// including anonymous; nothing is left undecided.
	principals := []entities.PrincipalRef{
		{Anonymous: true},
		{ID: "p-voter", Role: entities.RoleVoter, ProfileID: "voter-1"},
		{ID: "p-party", Role: entities.RoleParty, ProfileID: "party-1"},
		{ID: "p-staff", Role: entities.RoleStaff, ProfileID: "staff-1"},
		{ID: "p-admin", Role: entities.RoleAdmin},
	}
	for _, principal := range principals {
		for _, action := range Actions() {
			decision := Decide(principal, action, entities.Resource{})
			if !decision.Allowed && decision.Reason == "" {
				t.Fatalf("undecided denial for role=%q action=%s", principal.Role, action)
			}
		}
	}

	voter := entities.PrincipalRef{ID: "p-voter", Role: entities.RoleVoter}
	if decision := Decide(voter, entities.Action("made.up"), entities.Resource{}); decision.Allowed {
		t.Fatalf("unknown action must deny")
	}
}

func TestPublicActionsAllowAnonymous(t *testing.T) {
	anonymous := entities.PrincipalRef{Anonymous: true}
	for _, action := range []entities.Action{
		entities.ActionBallotRead,
		entities.ActionBallotList,
		entities.ActionResultRead,
	} {
		if decision := Decide(anonymous, action, entities.Resource{}); !decision.Allowed {
			t.Fatalf("anonymous denied public action %s", action)
		}
	}
	if decision := Decide(anonymous, entities.ActionVoteCast, entities.Resource{}); decision.Allowed {
		t.Fatalf("anonymous must not cast votes")
	}
}

func TestOwnershipGrantsProfileRead(t *testing.T) {
	owner := entities.PrincipalRef{ID: "p-1", Role: entities.RoleVoter, ProfileID: "voter-1"}
	stranger := entities.PrincipalRef{ID: "p-2", Role: entities.RoleVoter, ProfileID: "voter-2"}
	resource := entities.Resource{Kind: "voter_profile", OwnerProfileID: "voter-1", Owned: true}

	if decision := Decide(owner, entities.ActionProfileRead, resource); !decision.Allowed {
		t.Fatalf("owner denied own profile: %s", decision.Reason)
	}
	if decision := Decide(stranger, entities.ActionProfileRead, resource); decision.Allowed {
		t.Fatalf("stranger allowed on foreign profile")
	}
	// Ownership is independent of role: staff cannot read arbitrary
	// profiles, only moderation-flagged resources.
	staff := entities.PrincipalRef{ID: "p-3", Role: entities.RoleStaff, ProfileID: "staff-1"}
	if decision := Decide(staff, entities.ActionProfileRead, resource); decision.Allowed {
		t.Fatalf("staff allowed on foreign profile without moderation flag")
	}
}

func TestModerationActionsAllowStaff(t *testing.T) {
	staff := entities.PrincipalRef{ID: "p-staff", Role: entities.RoleStaff, ProfileID: "staff-1"}
	complaint := entities.Resource{Kind: "complaint", OwnerProfileID: "voter-1", Owned: true}

	if decision := Decide(staff, entities.ActionComplaintRead, complaint); !decision.Allowed {
		t.Fatalf("staff denied complaint moderation read: %s", decision.Reason)
	}

	owner := entities.PrincipalRef{ID: "p-voter", Role: entities.RoleVoter, ProfileID: "voter-1"}
	if decision := Decide(owner, entities.ActionComplaintRead, complaint); !decision.Allowed {
		t.Fatalf("complaint owner denied read: %s", decision.Reason)
	}

	other := entities.PrincipalRef{ID: "p-other", Role: entities.RoleVoter, ProfileID: "voter-9"}
	if decision := Decide(other, entities.ActionComplaintRead, complaint); decision.Allowed {
		t.Fatalf("unrelated voter allowed on foreign complaint")
	}
}

func TestPrincipalReadScopedToOwnerAndStaff(t *testing.T) {
	record := entities.Resource{Kind: "principal", OwnerProfileID: "voter-1", Owned: true}

	owner := entities.PrincipalRef{ID: "p-1", Role: entities.RoleVoter, ProfileID: "voter-1"}
	if decision := Decide(owner, entities.ActionPrincipalRead, record); !decision.Allowed {
		t.Fatalf("owner denied own principal record: %s", decision.Reason)
	}

	// Being authenticated is not enough; the record holds contact details.
	stranger := entities.PrincipalRef{ID: "p-2", Role: entities.RoleVoter, ProfileID: "voter-2"}
	if decision := Decide(stranger, entities.ActionPrincipalRead, record); decision.Allowed {
		t.Fatalf("foreign voter allowed to read another principal")
	}
	party := entities.PrincipalRef{ID: "p-3", Role: entities.RoleParty, ProfileID: "party-1"}
	if decision := Decide(party, entities.ActionPrincipalRead, record); decision.Allowed {
		t.Fatalf("party principal allowed to read a voter's record")
	}

	staff := entities.PrincipalRef{ID: "p-4", Role: entities.RoleStaff, ProfileID: "staff-1"}
	if decision := Decide(staff, entities.ActionPrincipalRead, record); !decision.Allowed {
		t.Fatalf("staff denied principal moderation read: %s", decision.Reason)
	}

	anonymous := entities.PrincipalRef{Anonymous: true}
	if decision := Decide(anonymous, entities.ActionPrincipalRead, record); decision.Allowed {
		t.Fatalf("anonymous allowed to read a principal record")
	}
}

func TestVoterOnlyActions(t *testing.T) {
	party := entities.PrincipalRef{ID: "p-party", Role: entities.RoleParty, ProfileID: "party-1"}
	if decision := Decide(party, entities.ActionVoteCast, entities.Resource{}); decision.Allowed {
		t.Fatalf("party principal allowed to cast votes")
	}
	voter := entities.PrincipalRef{ID: "p-voter", Role: entities.RoleVoter, ProfileID: "voter-1"}
	if decision := Decide(voter, entities.ActionVoteCast, entities.Resource{}); !decision.Allowed {
		t.Fatalf("voter denied vote cast: %s", decision.Reason)
	}
}
