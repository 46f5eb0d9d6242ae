package services

import "electra/contexts/identity-access/authorization-service/domain/entities"

type policyEntry struct {
	// roles allowed outright, independent of ownership.
	roles map[string]struct{}
	// public actions need no principal at all.
	public bool
	// ownerScoped actions additionally allow the profile owner.
	ownerScoped bool
	// moderation actions allow staff on owner-scoped resources.
	moderation bool
}

func roles(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// policyTable is the single authorization matrix for the system. Admin is
// handled before the table is consulted; entries list the non-admin grants.
var policyTable = map[entities.Action]policyEntry{
	entities.ActionBallotCreate: {roles: roles()},
	entities.ActionBallotUpdate: {roles: roles()},
	entities.ActionBallotOpen:   {roles: roles()},
	entities.ActionBallotClose:  {roles: roles()},
	entities.ActionBallotRead:   {public: true},
	entities.ActionBallotList:   {public: true},

	entities.ActionVoteCast:   {roles: roles(entities.RoleVoter)},
	entities.ActionVoteRead:   {roles: roles()},
	entities.ActionVoteList:   {roles: roles()},
	entities.ActionVoteRemove: {roles: roles()},

	entities.ActionResultRead:    {public: true},
	entities.ActionResultRefresh: {roles: roles()},

	entities.ActionProfileRead:   {ownerScoped: true},
	entities.ActionProfileUpdate: {ownerScoped: true},
	entities.ActionPrincipalRead: {ownerScoped: true, moderation: true},

	entities.ActionComplaintFile:    {roles: roles(entities.RoleVoter)},
	entities.ActionComplaintRead:    {ownerScoped: true, moderation: true},
	entities.ActionComplaintList:    {roles: roles(entities.RoleStaff)},
	entities.ActionComplaintResolve: {roles: roles(entities.RoleStaff)},
}

// Decide evaluates (principal, action, resource) against the policy table.
// Evaluation order: admin bypass, explicit role grant, ownership grant.
// Unknown actions deny.
func Decide(principal entities.PrincipalRef, action entities.Action, resource entities.Resource) entities.Decision {
	if !principal.Anonymous && principal.Role == entities.RoleAdmin {
		return entities.Allow()
	}

	entry, known := policyTable[action]
	if !known {
		return entities.Deny("unknown action")
	}

	if entry.public {
		return entities.Allow()
	}
	if principal.Anonymous {
		return entities.Deny("authentication required")
	}
	if _, ok := entry.roles[principal.Role]; ok {
		return entities.Allow()
	}
	if entry.ownerScoped && resource.Owned {
		if entry.moderation && principal.Role == entities.RoleStaff {
			return entities.Allow()
		}
		if principal.ProfileID != "" && principal.ProfileID == resource.OwnerProfileID {
			return entities.Allow()
		}
	}
	return entities.Deny("insufficient permission")
}

// Actions returns every action the table decides, for exhaustiveness checks.
func Actions() []entities.Action {
	all := make([]entities.Action, 0, len(policyTable))
	for action := range policyTable {
		all = append(all, action)
	}
	return all
}
