package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowList(t *testing.T) {
	allow := NewAllowList([]string{
		"hiiyogita11@gmail.com",
		" PoliceOfficers100@Gmail.com ",
	})

	t.Run("member emails are allowed", func(t *testing.T) {
		assert.True(t, allow.Allowed("hiiyogita11@gmail.com"))
		assert.True(t, allow.Allowed("policeofficers100@gmail.com"))
	})

	t.Run("membership ignores case and whitespace", func(t *testing.T) {
		assert.True(t, allow.Allowed("HIIYOGITA11@GMAIL.COM"))
		assert.True(t, allow.Allowed("  policeofficers100@gmail.com "))
	})

	t.Run("non-members are denied regardless of shape", func(t *testing.T) {
		assert.False(t, allow.Allowed("attacker@gmail.com"))
		assert.False(t, allow.Allowed("hiiyogita11@gmail.com.evil.example"))
		assert.False(t, allow.Allowed("policeofficers101@gmail.com"))
	})

	t.Run("empty email is never allowed", func(t *testing.T) {
		assert.False(t, allow.Allowed(""))
		assert.False(t, allow.Allowed("   "))
	})

	t.Run("blank entries are dropped at construction", func(t *testing.T) {
		list := NewAllowList([]string{"", "  ", "a@example.com"})
		assert.Equal(t, 1, list.Len())
	})
}
