package domain

// League codes accepted on competition records.
const (
	LeagueWNL  = "WNL"
	LeagueNCNS = "NCNS"
	LeagueMNS  = "MNS"
	LeagueNSC  = "NSC"
	LeagueFINA = "FINA"
	LeagueMisc = "Misc"
	LeagueUNAA = "UNAA"
)

// League describes a competition series.
type League struct {
	Code        string
	Name        string
	Description string
	Color       string
}

// Leagues lists the known series in display order.
var Leagues = []League{
	{Code: LeagueWNL, Name: "World Ninja League", Description: "World Ninja League (WNL) is one of the premier ninja competition leagues. WNL hosts multiple tiers of events with national-level finals each season.", Color: "#000000"},
	{Code: LeagueNSC, Name: "National Sport Competitions", Color: "#005566"},
	{Code: LeagueNCNS, Name: "North Central Ninja Series", Description: "NCNS is a regional league connecting gyms across the Midwest, including events in Iowa, Minnesota, and nearby states.", Color: "#CD5C5C"},
	{Code: LeagueMNS, Name: "Midwest Ninja Series"},
	{Code: LeagueFINA, Name: "FINA"},
	{Code: LeagueUNAA, Name: "Ultimate Ninja Athlete Association"},
	{Code: LeagueMisc, Name: "Miscellaneous", Color: "#808080"},
}

// LookupLeague finds a league by code.
func LookupLeague(code string) (League, bool) {
	for _, l := range Leagues {
		if l.Code == code {
			return l, true
		}
	}
	return League{}, false
}
