package access

import (
	"math"
	"time"

	"chamber-connect-backend/internal/domain"
)

// PermissionSet is the derived capability set for a (role, membership,
// subscription) triple. It is recomputed from source-of-truth on every read
// and never cached across subscription changes.
type PermissionSet struct {
	IsAdmin               bool `json:"is_admin"`
	IsStaff               bool `json:"is_staff"`
	IsChamberAdmin        bool `json:"is_chamber_admin"`
	HasActiveSubscription bool `json:"has_active_subscription"`
	CanManageChamber      bool `json:"can_manage_chamber"`
	CanManageMembers      bool `json:"can_manage_members"`
	CanCreateEvents       bool `json:"can_create_events"`
	CanViewAnalytics      bool `json:"can_view_analytics"`
	CanAccessCrossChamber bool `json:"can_access_cross_chamber"`
	CanManageSubscription bool `json:"can_manage_subscription"`
}

// HasActiveSubscription reports whether sub grants active-subscription-level
// access. Trialing counts as active; nil does not.
func HasActiveSubscription(sub *domain.ChamberSubscription) bool {
	if sub == nil {
		return false
	}
	return sub.Status == domain.SubscriptionStatusActive ||
		sub.Status == domain.SubscriptionStatusTrialing
}

// CalculatePermissions derives the capability set. It is total over its
// input domain: nil membership or subscription degrades to the most
// restrictive set, with CanManageChamber and CanManageSubscription still
// driven solely by the account role. Chamber and subscription management
// stay subscription-independent so an admin can fix lapsed billing.
func CalculatePermissions(userRole domain.UserRole, membership *domain.ChamberMembership, sub *domain.ChamberSubscription) PermissionSet {
	var p PermissionSet

	p.IsChamberAdmin = userRole == domain.UserRoleChamberAdmin
	if membership != nil {
		p.IsAdmin = membership.Role == domain.MembershipRoleAdmin
		p.IsStaff = membership.Role == domain.MembershipRoleStaff || p.IsAdmin
	}
	p.HasActiveSubscription = HasActiveSubscription(sub)

	var plan *domain.SubscriptionPlan
	if sub != nil {
		plan = sub.Plan
	}

	p.CanManageChamber = p.IsChamberAdmin || p.IsAdmin
	p.CanManageSubscription = p.IsChamberAdmin || p.IsAdmin
	p.CanManageMembers = (p.IsChamberAdmin || p.IsAdmin) && p.HasActiveSubscription
	p.CanCreateEvents = (p.IsStaff || p.IsChamberAdmin) && p.HasActiveSubscription
	p.CanViewAnalytics = (p.IsStaff || p.IsChamberAdmin) && p.HasActiveSubscription &&
		plan != nil && plan.AnalyticsEnabled
	p.CanAccessCrossChamber = p.HasActiveSubscription &&
		plan != nil && plan.CrossChamberNetworking

	return p
}

// IsInTrialPeriod reports whether sub is trialing with time remaining at now.
func IsInTrialPeriod(sub *domain.ChamberSubscription, now time.Time) bool {
	if sub == nil || sub.TrialEnd == nil {
		return false
	}
	return sub.Status == domain.SubscriptionStatusTrialing && sub.TrialEnd.After(now)
}

// TrialDaysRemaining returns the number of whole-or-partial days left in the
// trial, clamped to 0 when the trial has ended or sub is not trialing.
func TrialDaysRemaining(sub *domain.ChamberSubscription, now time.Time) int {
	if !IsInTrialPeriod(sub, now) {
		return 0
	}
	days := int(math.Ceil(sub.TrialEnd.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
