package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cla-designs/clabot/internal/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		member models.Member
		want   Level
	}{
		{
			name:   "empty member",
			member: models.Member{},
			want:   Member,
		},
		{
			name:   "administrator flag without roles",
			member: models.Member{ID: "1", Permissions: []string{FlagAdministrator}},
			want:   Admin,
		},
		{
			name:   "owner role",
			member: models.Member{ID: "2", Roles: []string{"Server Owner"}},
			want:   Admin,
		},
		{
			name:   "head of design is admin",
			member: models.Member{ID: "3", Roles: []string{"Head of Design"}},
			want:   Admin,
		},
		{
			name:   "ban flag without roles",
			member: models.Member{ID: "4", Permissions: []string{FlagBanMembers}},
			want:   Moderator,
		},
		{
			name:   "lead designer is moderator",
			member: models.Member{ID: "5", Roles: []string{"Lead Designer"}},
			want:   Moderator,
		},
		{
			// "Staff" sits in the moderator keyword list, so a plain Staff
			// role classifies above the staff tier.
			name:   "bare staff role is moderator",
			member: models.Member{ID: "6", Roles: []string{"Staff"}},
			want:   Moderator,
		},
		{
			name:   "senior designer is staff",
			member: models.Member{ID: "7", Roles: []string{"Senior Designer"}},
			want:   Staff,
		},
		{
			name:   "graphic designer is staff",
			member: models.Member{ID: "8", Roles: []string{"Graphic Designer", "Member"}},
			want:   Staff,
		},
		{
			name:   "case-insensitive substring",
			member: models.Member{ID: "9", Roles: []string{"junior WEB DEVELOPER"}},
			want:   Staff,
		},
		{
			name:   "vip client",
			member: models.Member{ID: "10", Roles: []string{"VIP Client"}},
			want:   VIP,
		},
		{
			name:   "plain member role",
			member: models.Member{ID: "11", Roles: []string{"Community Member"}},
			want:   Member,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.member))
		})
	}
}

func TestMonotonicInclusion(t *testing.T) {
	admin := models.Member{Permissions: []string{FlagAdministrator}}

	assert.True(t, IsAdmin(admin))
	assert.True(t, IsModerator(admin))
	assert.True(t, IsStaff(admin))
	assert.True(t, IsVIP(admin))
}

func TestPredicates(t *testing.T) {
	moderator := models.Member{Roles: []string{"Senior Moderator"}}
	staff := models.Member{Roles: []string{"Customer Service"}}
	member := models.Member{Roles: []string{"Gamer"}}
	banner := models.Member{Permissions: []string{FlagBanMembers}}

	assert.True(t, CanManagePoints(moderator))
	assert.False(t, CanManagePoints(staff))
	assert.True(t, CanViewPoints(staff))
	assert.False(t, CanViewPoints(member))
	assert.True(t, CanBan(banner))
	assert.False(t, CanBan(staff))

	// Absent principal: all predicates false.
	assert.False(t, CanManagePoints(models.Member{}))
	assert.False(t, CanViewPoints(models.Member{}))
	assert.False(t, CanBan(models.Member{}))
}

func TestIsDesignerRole(t *testing.T) {
	assert.True(t, IsDesignerRole("Junior Designer"))
	assert.True(t, IsDesignerRole("staff team"))
	assert.False(t, IsDesignerRole("VIP Client"))
}

func TestSummarize(t *testing.T) {
	s := Summarize(models.Member{Roles: []string{"Quality Assurance"}})

	assert.Equal(t, "Moderator", s.Level)
	assert.False(t, s.IsAdmin)
	assert.True(t, s.IsModerator)
	assert.True(t, s.CanManagePoints)
	assert.True(t, s.CanViewPoints)
	assert.False(t, s.CanBan)
}
