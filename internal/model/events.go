package model

// Broadcast event names, one per accepted transition.
const (
	EventGameStarted   = "gameStarted"
	EventMoveMade      = "moveMade"
	EventGameResigned  = "gameResigned"
	EventDrawOffered   = "drawOffered"
	EventDrawResponse  = "drawResponse"
	EventGameAbandoned = "gameAbandoned"
)

// SeatedGame is a game snapshot annotated with the colour of the player it
// is addressed to.
type SeatedGame struct {
	*Game
	AssignedColor Side `json:"assignedColor"`
}

type JoinedPlayer struct {
	ID    string `json:"id"`
	Color Side   `json:"color"`
}

type GameStartedEvent struct {
	Game         SeatedGame   `json:"game"`
	BoardState   *BoardView   `json:"boardState"`
	JoinedPlayer JoinedPlayer `json:"joinedPlayer"`
}

// MoveRecord describes the move that was just applied.
type MoveRecord struct {
	SAN       string `json:"san"`
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
	By        string `json:"by"`
	Color     Side   `json:"color"`
}

type MoveMadeEvent struct {
	Message    string     `json:"message"`
	Game       *Game      `json:"game"`
	BoardState *BoardView `json:"boardState"`
	Move       MoveRecord `json:"move"`
}

type GameResignedEvent struct {
	Game       *Game  `json:"game"`
	ResignedBy string `json:"resignedBy"`
	Winner     Side   `json:"winner"`
}

type DrawOfferedEvent struct {
	Game      *Game  `json:"game"`
	OfferedBy string `json:"offeredBy"`
}

type DrawResponseEvent struct {
	Game        *Game  `json:"game"`
	RespondedBy string `json:"respondedBy"`
	Accepted    bool   `json:"accepted"`
}

type GameAbandonedEvent struct {
	Game *Game `json:"game"`
}
