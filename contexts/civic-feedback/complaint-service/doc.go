// Package complaintservice handles voter complaints in the civic-feedback
// context. Voters file and read their own complaints; staff list and
// resolve them.
package complaintservice
