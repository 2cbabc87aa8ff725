package usecase

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleCoach  Role = "coach"
	RolePlayer Role = "player"
)

func ParseRole(v string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(v))) {
	case RoleCoach:
		return RoleCoach, true
	case RolePlayer:
		return RolePlayer, true
	default:
		return "", false
	}
}

// RequestScope identifies the caller of a core operation. It is built per
// request by the transport layer and passed explicitly; nothing is read from
// ambient state.
type RequestScope struct {
	CurrentUserID string
	ActiveTeamID  string
	Role          Role
}

func (s RequestScope) IsCoach() bool {
	return s.Role == RoleCoach
}

func (s RequestScope) normalize() (RequestScope, error) {
	s.CurrentUserID = strings.TrimSpace(s.CurrentUserID)
	s.ActiveTeamID = strings.TrimSpace(s.ActiveTeamID)
	if s.CurrentUserID == "" || s.ActiveTeamID == "" {
		return RequestScope{}, fmt.Errorf("%w: current user and active team are required", ErrUnauthorized)
	}
	return s, nil
}

func requireMember(s RequestScope) (RequestScope, error) {
	return s.normalize()
}

func requireCoach(s RequestScope) (RequestScope, error) {
	s, err := s.normalize()
	if err != nil {
		return RequestScope{}, err
	}
	if !s.IsCoach() {
		return RequestScope{}, fmt.Errorf("%w: coach role is required", ErrForbidden)
	}
	return s, nil
}
