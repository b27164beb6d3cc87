// Package authz implements the ownership policy for record mutation.
package authz

import "github.com/dmitrijs2005/clinicdesk/internal/models"

// CanModify decides whether principal may mutate or delete a record whose
// recorded owner is ownerEmail. Rules, evaluated in order:
//
//  1. No current principal: false.
//  2. Admin principal: true.
//  3. Empty owner (legacy record written before ownership stamping): false.
//  4. Otherwise: exact match of ownerEmail against the principal's email.
//
// The ownership comparison is case-sensitive, unlike the case-insensitive
// email matching at registration/login.
func CanModify(p *models.Principal, ownerEmail string) bool {
	if p == nil {
		return false
	}
	if p.Role == models.RoleAdmin {
		return true
	}
	if ownerEmail == "" {
		return false
	}
	return ownerEmail == p.Email
}
