package constants

// Centralized constants for env keys, routes and shared messages.
const (
	// Environment variable keys
	EnvConfigPath = "ATAMNE_CONFIG"
	EnvDBPath     = "ATAMNE_DB"

	// Defaults
	DefaultConfigPath = "./atamne_config.json"
	DefaultDBPath     = "./data/atamne.db"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteCreatures     = "/creatures"
	RouteBattles       = "/battles"
	RouteBattleByCode  = "/battles/:battleCode"
	RouteBattleTargets = "/battles/:battleCode/targets"
	RouteBattleTurn    = "/battles/:battleCode/turn"
	RouteBattleAdvance = "/battles/:battleCode/advance"
	RouteBattleAITurn  = "/battles/:battleCode/ai-turn"
	RouteBattleEnd     = "/battles/:battleCode/end"
	RouteRecentBattles = "/recent-battles"
	RouteBattleStats   = "/battle-stats"
	RouteVersion       = "/version"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrInvalidBattleCode    = "Invalid battle code"
	ErrBattleNotFound       = "Battle not found"
	ErrBattleAlreadyEnded   = "Battle already ended"
	ErrFailedFetchCreatures = "Failed to fetch creatures"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedCreateBattle   = "Failed to create battle"
	ErrFailedUpdateBattle   = "Failed to update battle"
	ErrFailedFetchStats     = "Failed to fetch stats"

	ErrRosterMustBeThree    = "Roster must contain exactly 3 creatures"
	ErrUnknownCreature      = "Unknown creature in roster"
	ErrTurnAlreadyInFlight  = "A turn is already being resolved"
	ErrNoTurnToAdvance      = "No resolved turn to advance"
	ErrInvalidAttackOption  = "Attack is not one of the combatant's options"
	ErrNotCurrentAttacker   = "Attacker is not the current combatant"
	ErrNoTargetsAvailable   = "No available targets"
	ErrTargetRequired       = "Single attacks require a target"
	ErrUnknownDifficulty    = "Unknown difficulty"
)

// Logging field names
const (
	LogFieldBattleCode = "battle_code"
	LogFieldAddr       = "addr"
	LogFieldDifficulty = "difficulty"
	LogFieldTurn       = "turn"
	LogFieldWinner     = "winner"
)
