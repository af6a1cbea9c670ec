package liquipedia

const providerName = "liquipedia"

// Supported game slugs.
const (
	GameValorant        = "valorant"
	GameLeagueOfLegends = "league_of_legends"
	GameRocketLeague    = "rocket_league"
	GameCounterStrike2  = "counter_strike_2"
)

// gameWikis maps a game slug to its Liquipedia wiki name.
var gameWikis = map[string]string{
	GameValorant:        "valorant",
	GameLeagueOfLegends: "leagueoflegends",
	GameRocketLeague:    "rocketleague",
	GameCounterStrike2:  "counterstrike",
}

// WikiFor returns the wiki backing game.
func WikiFor(game string) (string, bool) {
	wiki, ok := gameWikis[game]
	return wiki, ok
}
