// Package campaign implements owner-scoped survey campaign management.
//
// Every operation takes the authenticated user's id and scopes data access
// to it; a campaign belonging to another user is indistinguishable from a
// missing one (ErrNotFound, never a 403 at the API layer).
package campaign
