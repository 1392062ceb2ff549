package fakeserver

// DefaultGames is the catalog served when Config.Games is empty. Records
// deliberately mix the key spellings real aggregators use.
const DefaultGames = `[
  {"game_id":"vs20olympgate","name":"Gates of Olympus","provider":"pragmatic","category":"slots","volatility":"high","rtp":96.5,"has_freespins":true,"thumbnail":"https://cdn.casinodog.test/vs20olympgate.png"},
  {"game_id":"vs20fruitsw","name":"Sweet Bonanza","provider":"pragmatic","category":"slots","volatility":"high","rtp":96.48,"has_freespins":true},
  {"id":"bookofdead","game_name":"Book of Dead","provider":"playngo","category":"slots","volatility":"high","rtp":"96.21","image":"https://cdn.casinodog.test/bookofdead.png"},
  {"id":"starburst","game_name":"Starburst","provider":"netent","category":"slots","volatility":"low","rtp":96.09,"has_freespins":false},
  {"game_id":"lightningroulette","game_name":"Lightning Roulette","provider":"evolution","category":"live"}
]`
