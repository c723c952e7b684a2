// Package access holds the single table of which roles may perform which action.
package access

import users "github.com/AdamBeresnev/courtside/internal/user"

type Action string

const (
	ViewScoresheet   Action = "view_scoresheet"
	UpdateGameState  Action = "update_game_state"
	RecordFieldGoal  Action = "record_field_goal"
	RecordPlayerStat Action = "record_player_stat"
	SavePlayerStats  Action = "save_player_stats"
	CompleteGame     Action = "complete_game"
	CreateMatchup    Action = "create_matchup"
	UpdateMatchup    Action = "update_matchup"
	ManageSeasons    Action = "manage_seasons"
	ManageUsers      Action = "manage_users"
	CreateTeam       Action = "create_team"
	ManageRoster     Action = "manage_roster"
	JoinTeam         Action = "join_team"
)

var policy = map[Action][]users.Role{
	ViewScoresheet:   {users.RoleCoach, users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	UpdateGameState:  {users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	RecordFieldGoal:  {users.RoleCoach, users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	RecordPlayerStat: {users.RoleCoach, users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	SavePlayerStats:  {users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	CompleteGame:     {users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	CreateMatchup:    {users.RoleReferee, users.RoleCommittee, users.RoleAdmin},
	// Referees may create matchups but not edit them, coaches the other way round.
	UpdateMatchup: {users.RoleAdmin, users.RoleCoach, users.RoleCommittee},
	ManageSeasons: {users.RoleAdmin},
	ManageUsers:   {users.RoleAdmin},
	CreateTeam:    {users.RoleCoach},
	ManageRoster:  {users.RoleCoach},
	JoinTeam:      {users.RolePlayer},
}

// Allowed reports whether role may perform action. Unknown actions are denied.
func Allowed(action Action, role users.Role) bool {
	for _, r := range policy[action] {
		if r == role {
			return true
		}
	}
	return false
}

// Can is Allowed for a possibly missing user.
func Can(u *users.User, action Action) bool {
	return u != nil && Allowed(action, u.Role)
}

// Roles lists who may perform action, for error messages.
func Roles(action Action) []users.Role {
	return append([]users.Role(nil), policy[action]...)
}
