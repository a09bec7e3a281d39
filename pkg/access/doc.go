// Package access computes effective rules from group membership and replaces
// an admin's memberships without letting the granting admin escalate.
//
// Resolver unions the rules attached to a set of groups. GrantManager
// replaces the full membership set of a target admin in a single
// transaction, keeping only groups within the acting admin's reach.
package access
