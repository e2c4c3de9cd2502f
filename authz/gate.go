// Package authz holds the role gate. It knows nothing about resources; ownership
// checks belong to the services that own each entity.
package authz

import "github.com/handmade-hub/handmade-hub-backend-go/models"

// Allow reports whether role is one of required.
func Allow(role models.Role, required ...models.Role) bool {
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}
