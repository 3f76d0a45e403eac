package apperr

// Code is a machine-readable error code.
type Code string

const (
	CodeInternal Code = "INTERNAL"

	// Lookup
	CodeGameNotFound Code = "GAME_NOT_FOUND"

	// Status
	CodeGameNotPending Code = "GAME_NOT_PENDING"
	CodeGameNotActive  Code = "GAME_NOT_ACTIVE"
	CodeGameNotIdle    Code = "GAME_NOT_IDLE"

	// Actor
	CodePlayerNotInGame   Code = "PLAYER_NOT_IN_GAME"
	CodeCannotJoinOwnGame Code = "CANNOT_JOIN_OWN_GAME"
	CodeOwnDrawOffer      Code = "OWN_DRAW_OFFER"
	CodeActorMismatch     Code = "ACTOR_MISMATCH"
	CodeUnauthenticated   Code = "UNAUTHENTICATED"

	// Payload and rules
	CodePlayerIDRequired   Code = "PLAYER_ID_REQUIRED"
	CodeInvalidRequest     Code = "INVALID_REQUEST"
	CodeInvalidSquare      Code = "INVALID_SQUARE"
	CodeInvalidPromotion   Code = "INVALID_PROMOTION"
	CodeNotYourTurn        Code = "NOT_YOUR_TURN"
	CodeIllegalMove        Code = "ILLEGAL_MOVE"
	CodeDrawAlreadyOffered Code = "DRAW_ALREADY_OFFERED"
	CodeNoDrawOffer        Code = "NO_DRAW_OFFER"
	CodeGameFull           Code = "GAME_FULL"

	// Persistence
	CodeVersionConflict Code = "VERSION_CONFLICT"
	CodeInvariant       Code = "INVARIANT_VIOLATION"
)

// Sentinels for errors.Is; they match any *Error with the same code.
var (
	ErrGameNotFound       = New(KindNotFound, CodeGameNotFound, "game not found")
	ErrGameNotPending     = New(KindInvalidState, CodeGameNotPending, "game is no longer available")
	ErrGameNotActive      = New(KindInvalidState, CodeGameNotActive, "game is not active")
	ErrGameNotIdle        = New(KindInvalidState, CodeGameNotIdle, "game had recent activity")
	ErrPlayerNotInGame    = New(KindForbidden, CodePlayerNotInGame, "player is not part of this game")
	ErrCannotJoinOwnGame  = New(KindForbidden, CodeCannotJoinOwnGame, "cannot join your own game")
	ErrOwnDrawOffer       = New(KindForbidden, CodeOwnDrawOffer, "cannot respond to your own draw offer")
	ErrActorMismatch      = New(KindForbidden, CodeActorMismatch, "player id does not match the authenticated player")
	ErrUnauthenticated    = New(KindUnauthenticated, CodeUnauthenticated, "authentication required")
	ErrPlayerIDRequired   = New(KindValidationFailed, CodePlayerIDRequired, "player ID is required")
	ErrNotYourTurn        = New(KindValidationFailed, CodeNotYourTurn, "it is not your turn")
	ErrIllegalMove        = New(KindValidationFailed, CodeIllegalMove, "invalid move")
	ErrDrawAlreadyOffered = New(KindValidationFailed, CodeDrawAlreadyOffered, "there is already a pending draw offer")
	ErrNoDrawOffer        = New(KindValidationFailed, CodeNoDrawOffer, "no pending draw offer")
	ErrGameFull           = New(KindInvalidState, CodeGameFull, "game already has two players")
	ErrVersionConflict    = New(KindConflict, CodeVersionConflict, "game was modified concurrently, retry")
)
