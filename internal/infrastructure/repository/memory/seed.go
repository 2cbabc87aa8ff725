package memory

import (
	"github.com/riskibarqy/team-growth/internal/domain/roster"
)

const (
	SeedTeamID = "team-garuda-u17"
	SeedCoach  = "user-coach-01"
)

// SeedPlayers is the demo roster loaded by the memory driver and by the
// postgres bootstrap seed.
func SeedPlayers() []roster.Player {
	return []roster.Player{
		{ID: "player-01", TeamID: SeedTeamID, UserID: "user-player-01", Name: "Raka Pratama", Position: roster.PositionGoalkeeper, JerseyNumber: 1},
		{ID: "player-02", TeamID: SeedTeamID, UserID: "user-player-02", Name: "Dimas Saputra", Position: roster.PositionDefender, JerseyNumber: 2},
		{ID: "player-03", TeamID: SeedTeamID, UserID: "user-player-03", Name: "Fajar Nugroho", Position: roster.PositionDefender, JerseyNumber: 3},
		{ID: "player-04", TeamID: SeedTeamID, UserID: "user-player-04", Name: "Bagas Wicaksono", Position: roster.PositionDefender, JerseyNumber: 4},
		{ID: "player-05", TeamID: SeedTeamID, UserID: "user-player-05", Name: "Yoga Permana", Position: roster.PositionDefender, JerseyNumber: 5},
		{ID: "player-06", TeamID: SeedTeamID, UserID: "user-player-06", Name: "Arif Hidayat", Position: roster.PositionMidfielder, JerseyNumber: 6},
		{ID: "player-07", TeamID: SeedTeamID, UserID: "user-player-07", Name: "Rizky Ramadhan", Position: roster.PositionForward, JerseyNumber: 7},
		{ID: "player-08", TeamID: SeedTeamID, UserID: "user-player-08", Name: "Galih Setiawan", Position: roster.PositionMidfielder, JerseyNumber: 8},
		{ID: "player-09", TeamID: SeedTeamID, UserID: "user-player-09", Name: "Ilham Maulana", Position: roster.PositionForward, JerseyNumber: 9},
		{ID: "player-10", TeamID: SeedTeamID, UserID: "user-player-10", Name: "Aditya Kusuma", Position: roster.PositionMidfielder, JerseyNumber: 10},
		{ID: "player-11", TeamID: SeedTeamID, UserID: "user-player-11", Name: "Bima Santoso", Position: roster.PositionForward, JerseyNumber: 11},
		{ID: "player-12", TeamID: SeedTeamID, UserID: "user-player-12", Name: "Hendra Gunawan", Position: roster.PositionGoalkeeper, JerseyNumber: 12},
		{ID: "player-14", TeamID: SeedTeamID, UserID: "user-player-14", Name: "Eko Prasetyo", Position: roster.PositionDefender, JerseyNumber: 14},
		{ID: "player-16", TeamID: SeedTeamID, UserID: "user-player-16", Name: "Taufik Hakim", Position: roster.PositionMidfielder, JerseyNumber: 16},
		{ID: "player-19", TeamID: SeedTeamID, UserID: "user-player-19", Name: "Rendi Kurniawan", Position: roster.PositionForward, JerseyNumber: 19},
	}
}
