package service

import "github.com/spec-kit/competition-service/internal/domain"

// LeagueNotFoundText is shown for leagues without a description.
const LeagueNotFoundText = "League information not found."

// LeagueDetails describes a league page. Found is false when the code has
// no description, in which case a placeholder is returned.
type LeagueDetails struct {
	domain.League
	Found bool
}

// LeagueInfo returns the description of a league series, falling back to a
// placeholder for unknown or undocumented codes.
func LeagueInfo(code string) LeagueDetails {
	league, ok := domain.LookupLeague(code)
	if ok && league.Description != "" {
		return LeagueDetails{League: league, Found: true}
	}
	if !ok {
		league = domain.League{Code: code, Name: code + " League"}
	}
	league.Description = LeagueNotFoundText
	return LeagueDetails{League: league}
}

// Leagues lists the known league series.
func Leagues() []domain.League {
	return append([]domain.League(nil), domain.Leagues...)
}
