package constants

// Centralized constants for headers, env keys, routes and API errors.
const (
	// Environment variable keys
	EnvSessionSecret       = "SESSION_SECRET"
	EnvGoogleClientID      = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret  = "GOOGLE_CLIENT_SECRET"
	EnvSessionSecureCookie = "SESSION_SECURE_COOKIE"
	EnvArenaConfig         = "ARENA_CONFIG"
	EnvArenaDB             = "ARENA_DB"

	// HTTP headers and content types
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"

	ContentTypeJSON = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Session / Cookie names
	CookieSessionName = "ba_session"

	// Google OAuth constants
	GoogleOAuthRedirect = "postmessage"
	GoogleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

var (
	// Scopes for Google userinfo
	GoogleUserInfoScopes = []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"}
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteEnemies            = "/enemies"
	RoutePublicRuns         = "/public-runs"
	RouteLeaderboard        = "/leaderboard"
	RouteAuthGoogleCallBack = "/auth/google/oauth2callback"
	RoutePlayerStats        = "/player-stats"
	RouteVersion            = "/version"
	RouteAuthLogout         = "/auth/logout"
	RouteRuns               = "/runs"
	RouteActiveRun          = "/runs/active"
	RouteRunByCode          = "/runs/:runCode"
	RouteRunRecords         = "/runs/:runCode/records"
	RouteRunRetire          = "/runs/:runCode/retire"
	RouteFightStart         = "/runs/:runCode/fights"
	RouteFightCurrent       = "/runs/:runCode/fights/current"
	RouteFightAction        = "/runs/:runCode/fights/action"
	RouteFightAdvance       = "/runs/:runCode/fights/advance"
	RouteFightForfeit       = "/runs/:runCode/fights/forfeit"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyDetails = "details"
	JSONKeyMessage = "message"
	JSONKeyReason  = "reason"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest   = "Invalid request"
	ErrMissingGoogleEnv = "Missing GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET in environment"
	ErrInvalidRunCode   = "Invalid run code"
	ErrRunNotFound      = "Run not found"
	ErrRunNotActive     = "Run is not active"
	ErrRunAlreadyActive = "An active run already exists for this account"

	ErrFailedFetchEnemies     = "Failed to fetch enemies"
	ErrFailedFetchRuns        = "Failed to fetch runs"
	ErrFailedEncodeRuns       = "Failed to encode runs"
	ErrFailedFetchLeaderboard = "Failed to fetch leaderboard"
	ErrFailedEncodeRun        = "Failed to encode run"
	ErrFailedFetchStats       = "Failed to fetch stats"
	ErrFailedUpdateProfile    = "Failed to update player profile"
	ErrEmailRequired          = "email is required"

	ErrFailedCreateRun     = "Failed to create run"
	ErrFighterNameInvalid  = "Fighter name must be 3-24 letters"
	ErrFailedUpdateRun     = "Failed to update run"
	ErrFailedRetireRun     = "Failed to retire run"
	ErrNotRunOwner         = "Run belongs to another player"
	ErrFighterNotFit       = "Fighter cannot enter the arena"
	ErrEnemyNotFound       = "Enemy not found"
	ErrEnemyWrongLeague    = "Enemy fights in another league"
	ErrFightInProgress     = "A fight is already in progress"
	ErrNoFightInProgress   = "No fight in progress"
	ErrNotYourTurn         = "Not your turn"
	ErrNoResolutionToAck   = "No resolution awaiting acknowledgement"
	ErrCannotAffordAction  = "Not enough stamina or focus"
	ErrInvalidActionZone   = "Invalid action or target zone"
	ErrFightAlreadyOver    = "Fight is already over"
	ErrFailedStartFight    = "Failed to start fight"
	ErrFailedStoreAction   = "Failed to store action"
	ErrActionNotPermitted  = "Action not permitted"
	ErrFailedAdvanceFight  = "Failed to advance fight"
	ErrFailedForfeitFight  = "Failed to forfeit fight"
	ErrFailedPersistResult = "Failed to persist fight result"
	ErrFailedFetchRecords  = "Failed to fetch fight records"

	ErrFailedExchangeToken    = "Failed to exchange token"
	ErrFailedGetUserInfo      = "Failed to get user info"
	ErrFailedReadUserData     = "Failed to read user data: %s"
	ErrNoEmailInGoogleProfile = "No email in Google profile"
	ErrFailedCreateSession    = "Failed to create session"

	ErrAuthRequired   = "Authentication required"
	ErrInvalidSession = "Invalid session"
)

// Logging field names
const (
	LogFieldRunID   = "run_id"
	LogFieldRunCode = "run_code"
	LogFieldFighter = "fighter"
	LogFieldEnemy   = "enemy"
	LogFieldLeague  = "league"
	LogFieldRound   = "round"
	LogFieldPhase   = "phase"
	LogFieldSeed    = "seed"
	LogFieldAddr    = "addr"
)
