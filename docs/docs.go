// Package docs holds the OpenAPI document of the REST API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/games/create": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Create a game",
                "parameters": [
                    {"description": "creator", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PlayerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CreateGameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/join/{gameId}": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Join a pending game",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true},
                    {"description": "joiner", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PlayerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.JoinGameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Get the current game state",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameStateResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}/move": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Make a move",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true},
                    {"description": "move", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.MoveRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MoveResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}/resign": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Resign a game",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true},
                    {"description": "resigning player", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PlayerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}/offer-draw": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Offer a draw",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true},
                    {"description": "offering player", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.PlayerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/games/{gameId}/respond-draw": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["games"],
                "summary": "Accept or decline a draw offer",
                "parameters": [
                    {"type": "string", "description": "game id", "name": "gameId", "in": "path", "required": true},
                    {"description": "response", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.RespondDrawRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.GameResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/players/{playerId}/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Finished-game statistics of a player",
                "parameters": [
                    {"type": "string", "description": "player id", "name": "playerId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.PlayerStats"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"},
                "kind": {"type": "string"},
                "details": {"type": "string"}
            }
        },
        "handler.PlayerRequest": {
            "type": "object",
            "properties": {
                "playerId": {"type": "string"}
            }
        },
        "handler.MoveRequest": {
            "type": "object",
            "properties": {
                "playerId": {"type": "string"},
                "from": {"type": "string", "example": "e2"},
                "to": {"type": "string", "example": "e4"},
                "promotion": {"type": "string", "enum": ["q", "r", "b", "n"]}
            }
        },
        "handler.RespondDrawRequest": {
            "type": "object",
            "properties": {
                "playerId": {"type": "string"},
                "accept": {"type": "boolean"}
            }
        },
        "handler.GameResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "game": {"$ref": "#/definitions/model.Game"}
            }
        },
        "handler.CreateGameResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "game": {"$ref": "#/definitions/model.Game"},
                "inviteLink": {"type": "string"}
            }
        },
        "handler.JoinGameResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "game": {"$ref": "#/definitions/model.SeatedGame"},
                "boardState": {"$ref": "#/definitions/model.BoardView"}
            }
        },
        "handler.GameStateResponse": {
            "type": "object",
            "properties": {
                "game": {"$ref": "#/definitions/model.Game"},
                "boardState": {"$ref": "#/definitions/model.BoardView"}
            }
        },
        "handler.MoveResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "game": {"$ref": "#/definitions/model.Game"},
                "boardState": {"$ref": "#/definitions/model.BoardView"},
                "move": {"$ref": "#/definitions/model.MoveRecord"}
            }
        },
        "model.Game": {
            "type": "object",
            "properties": {
                "gameId": {"type": "string"},
                "whitePlayer": {"type": "string", "x-nullable": true},
                "blackPlayer": {"type": "string", "x-nullable": true},
                "status": {"type": "string", "enum": ["pending", "active", "completed", "abandoned"]},
                "fen": {"type": "string"},
                "inviteLink": {"type": "string"},
                "result": {"type": "string", "enum": ["white", "black", "draw"]},
                "moveHistory": {"type": "array", "items": {"type": "string"}},
                "drawOffer": {"$ref": "#/definitions/model.DrawOffer"},
                "lastMovedAt": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string", "format": "date-time"},
                "version": {"type": "integer"}
            }
        },
        "model.SeatedGame": {
            "allOf": [
                {"$ref": "#/definitions/model.Game"},
                {"type": "object", "properties": {"assignedColor": {"type": "string", "enum": ["white", "black"]}}}
            ]
        },
        "model.DrawOffer": {
            "type": "object",
            "properties": {
                "offeredBy": {"type": "string"},
                "offeredAt": {"type": "string", "format": "date-time"}
            }
        },
        "model.BoardSquare": {
            "type": "object",
            "x-nullable": true,
            "properties": {
                "square": {"type": "string"},
                "type": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "model.BoardView": {
            "type": "array",
            "items": {"type": "array", "items": {"$ref": "#/definitions/model.BoardSquare"}}
        },
        "model.MoveRecord": {
            "type": "object",
            "properties": {
                "san": {"type": "string"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "promotion": {"type": "string"},
                "by": {"type": "string"},
                "color": {"type": "string"}
            }
        },
        "model.PlayerStats": {
            "type": "object",
            "properties": {
                "playerId": {"type": "string"},
                "gamesPlayed": {"type": "integer"},
                "gamesWon": {"type": "integer"},
                "gamesLost": {"type": "integer"},
                "gamesDraw": {"type": "integer"},
                "games": {"type": "array", "items": {"type": "string"}},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "chessduel API",
	Description:      "Remote two-player chess sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
