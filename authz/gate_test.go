package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/handmade-hub/handmade-hub-backend-go/models"
)

func TestAllow(t *testing.T) {
	testCases := []struct {
		name     string
		role     models.Role
		required []models.Role
		want     bool
	}{
		{name: "single match", role: models.RoleAdmin, required: []models.Role{models.RoleAdmin}, want: true},
		{name: "one of many", role: models.RoleCustomer, required: []models.Role{models.RoleAdmin, models.RoleCustomer}, want: true},
		{name: "not listed", role: models.RoleArtisan, required: []models.Role{models.RoleAdmin, models.RoleCustomer}, want: false},
		{name: "empty role", role: "", required: []models.Role{models.RoleCustomer}, want: false},
		{name: "nothing required", role: models.RoleAdmin, want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allow(tc.role, tc.required...))
		})
	}
}
