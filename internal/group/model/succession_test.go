package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveSuccession(t *testing.T) {
	t.Run("promote rule promotes first remaining member", func(t *testing.T) {
		outcome := ResolveSuccession(IDList{"u2", "u3"}, LastAdminRulePromote)
		assert.False(t, outcome.DeleteGroup)
		assert.Equal(t, "u2", outcome.PromotedID)
	})

	t.Run("delete rule destroys group even with members left", func(t *testing.T) {
		outcome := ResolveSuccession(IDList{"u2", "u3"}, LastAdminRuleDelete)
		assert.True(t, outcome.DeleteGroup)
		assert.Empty(t, outcome.PromotedID)
	})

	t.Run("promote rule with no members left destroys group", func(t *testing.T) {
		outcome := ResolveSuccession(IDList{}, LastAdminRulePromote)
		assert.True(t, outcome.DeleteGroup)
	})

	t.Run("delete rule with no members left destroys group", func(t *testing.T) {
		outcome := ResolveSuccession(IDList{}, LastAdminRuleDelete)
		assert.True(t, outcome.DeleteGroup)
	})
}

func TestLastAdminRule_Valid(t *testing.T) {
	assert.True(t, LastAdminRulePromote.Valid())
	assert.True(t, LastAdminRuleDelete.Valid())
	assert.False(t, LastAdminRule("transfer").Valid())
	assert.False(t, LastAdminRule("").Valid())
}
