package permissions

import (
	"strings"

	"github.com/cla-designs/clabot/internal/models"
)

// Level is a capability level derived from role names and native permission
// flags, ordered least to most privileged.
type Level int

const (
	Member Level = iota
	VIP
	Staff
	Moderator
	Admin
)

func (l Level) String() string {
	switch l {
	case Admin:
		return "Admin"
	case Moderator:
		return "Moderator"
	case Staff:
		return "Staff"
	case VIP:
		return "VIP"
	default:
		return "Member"
	}
}

// Native permission flags as delivered by the platform gateway.
const (
	FlagAdministrator   = "Administrator"
	FlagManageMessages  = "ManageMessages"
	FlagKickMembers     = "KickMembers"
	FlagBanMembers      = "BanMembers"
	FlagModerateMembers = "ModerateMembers"
)

// Role-name keyword lists. Matching is case-insensitive substring matching,
// kept exactly as loose as the production server relies on.
var (
	adminRoles = []string{
		"Owner",
		"Co-Owner",
		"Admin",
		"Administrator",
		"Management",
		"Head of Design",
		"Community Manager",
		"Operations Director",
	}

	moderatorRoles = []string{
		"Moderator",
		"Mod",
		"Senior Moderator",
		"Lead Designer",
		"Senior Staff",
		"Staff",
		"Quality Assurance",
	}

	staffRoles = []string{
		"Staff",
		"Designer",
		"Graphic Designer",
		"Customer Service",
		"Content Creator",
		"Bot Developer",
		"Web Developer",
		"Specialist",
	}

	vipRoles = []string{
		"VIP",
		"VIP Client",
		"Verified Member",
		"Trusted",
		"Premium",
		"Supporter",
	}

	// designerRoles selects the roles granted access to new order channels
	// and mentioned in the order notification.
	designerRoles = []string{
		"Designer",
		"Graphic Designer",
		"Lead Designer",
		"Senior Designer",
		"Head of Design",
		"Junior Designer",
		"Staff",
		"Admin",
		"Moderator",
	}

	moderatorFlags = []string{
		FlagManageMessages,
		FlagKickMembers,
		FlagBanMembers,
		FlagModerateMembers,
	}
)

func hasFlag(m models.Member, flag string) bool {
	for _, p := range m.Permissions {
		if p == flag {
			return true
		}
	}
	return false
}

func roleMatches(roles []string, keywords []string) bool {
	for _, role := range roles {
		name := strings.ToLower(role)
		for _, keyword := range keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return true
			}
		}
	}
	return false
}

func IsAdmin(m models.Member) bool {
	if hasFlag(m, FlagAdministrator) {
		return true
	}
	return roleMatches(m.Roles, adminRoles)
}

// IsModerator reports moderator capability. Admins are moderators.
func IsModerator(m models.Member) bool {
	if IsAdmin(m) {
		return true
	}
	for _, flag := range moderatorFlags {
		if hasFlag(m, flag) {
			return true
		}
	}
	return roleMatches(m.Roles, moderatorRoles)
}

// IsStaff reports staff capability. Moderators and admins are staff.
func IsStaff(m models.Member) bool {
	if IsModerator(m) {
		return true
	}
	return roleMatches(m.Roles, staffRoles)
}

// IsVIP reports VIP capability. Staff and above are VIP.
func IsVIP(m models.Member) bool {
	if IsStaff(m) {
		return true
	}
	return roleMatches(m.Roles, vipRoles)
}

// Classify returns the highest capability level for a member. A member with
// no roles and no flags classifies as Member.
func Classify(m models.Member) Level {
	switch {
	case IsAdmin(m):
		return Admin
	case IsModerator(m):
		return Moderator
	case IsStaff(m):
		return Staff
	case IsVIP(m):
		return VIP
	default:
		return Member
	}
}

func CanManagePoints(m models.Member) bool {
	return IsAdmin(m) || IsModerator(m)
}

func CanViewPoints(m models.Member) bool {
	return CanManagePoints(m) || IsStaff(m)
}

func CanBan(m models.Member) bool {
	return hasFlag(m, FlagBanMembers) || IsAdmin(m)
}

// IsDesignerRole reports whether a role name matches the designer keyword
// list used for order-channel grants and notifications.
func IsDesignerRole(name string) bool {
	return roleMatches([]string{name}, designerRoles)
}

// Summary is the full predicate set for a member, used by the admin API.
type Summary struct {
	Level           string `json:"level"`
	IsAdmin         bool   `json:"is_admin"`
	IsModerator     bool   `json:"is_moderator"`
	IsStaff         bool   `json:"is_staff"`
	IsVIP           bool   `json:"is_vip"`
	CanManagePoints bool   `json:"can_manage_points"`
	CanViewPoints   bool   `json:"can_view_points"`
	CanBan          bool   `json:"can_ban"`
}

func Summarize(m models.Member) Summary {
	return Summary{
		Level:           Classify(m).String(),
		IsAdmin:         IsAdmin(m),
		IsModerator:     IsModerator(m),
		IsStaff:         IsStaff(m),
		IsVIP:           IsVIP(m),
		CanManagePoints: CanManagePoints(m),
		CanViewPoints:   CanViewPoints(m),
		CanBan:          CanBan(m),
	}
}
