package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eventhive/event-booking-api/internal/model"
)

func TestTierAtLeast(t *testing.T) {
	assert.True(t, model.TierAtLeast(model.RoleUser, model.RoleUser))
	assert.True(t, model.TierAtLeast(model.RoleOrganizer, model.RoleUser))
	assert.True(t, model.TierAtLeast(model.RoleAdmin, model.RoleUser))
	assert.True(t, model.TierAtLeast(model.RoleAdmin, model.RoleOrganizer))
	assert.True(t, model.TierAtLeast(model.RoleAdmin, model.RoleAdmin))

	assert.False(t, model.TierAtLeast(model.RoleUser, model.RoleOrganizer))
	assert.False(t, model.TierAtLeast(model.RoleOrganizer, model.RoleAdmin))
	assert.False(t, model.TierAtLeast("", model.RoleUser))
	assert.False(t, model.TierAtLeast("GUEST", model.RoleUser))
}

func TestValidRole(t *testing.T) {
	assert.True(t, model.ValidRole(model.RoleUser))
	assert.True(t, model.ValidRole(model.RoleOrganizer))
	assert.True(t, model.ValidRole(model.RoleAdmin))
	assert.False(t, model.ValidRole("user"))
	assert.False(t, model.ValidRole(""))
}
