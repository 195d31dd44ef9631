package policy

import "github.com/junhoi254/investment-academy/internal/dto"

// CanSend decides whether the current user may post into the current room.
// Free rooms are broadcast channels: only privileged roles post. Paid rooms
// accept any authenticated member. This is UX gating only; the server
// enforces the rule authoritatively on message creation.
//
// The inputs load asynchronously (room metadata and profile arrive after
// first paint), so callers re-evaluate on every render.
func CanSend(hasSession bool, roomFree bool, role string) bool {
	if !hasSession {
		return false
	}
	if !roomFree {
		return true
	}
	return Privileged(role)
}

func Privileged(role string) bool {
	switch role {
	case dto.RoleAdmin, dto.RoleStaff, dto.RoleSubAdmin:
		return true
	}
	return false
}

// SendHint is the placeholder/notice text shown next to the input for the
// same inputs CanSend evaluates.
func SendHint(hasSession bool, roomFree bool, role string) string {
	if !hasSession {
		return "Log in to send messages"
	}
	if roomFree && !Privileged(role) {
		return "Only admins and staff can post in this room"
	}
	return "Type a message..."
}

// IsMine reports whether a log entry was authored by the current user.
// While the profile has not loaded yet the current id is zero and nothing
// is styled as own.
func IsMine(currentUserID, authorID int) bool {
	return currentUserID != 0 && currentUserID == authorID
}
