// Package docs registers the swagger document served under /swagger. It is
// kept by hand in the layout swag init emits.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Backend Team"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/config/weights": {
            "get": {
                "description": "Weights the fallback opponent scores candidate moves with, for both games",
                "produces": ["application/json"],
                "tags": ["Config"],
                "summary": "Get heuristic weights",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/rooms": {
            "get": {
                "description": "Live rooms grouped by game type, then visibility",
                "produces": ["application/json"],
                "tags": ["Room"],
                "summary": "List rooms",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            },
            "post": {
                "description": "Registers a room ahead of time. With bot the fallback opponent takes a seat right away.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Room"],
                "summary": "Create a room",
                "parameters": [
                    {
                        "description": "Room settings",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/http.CreateRoomRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/http.CreateRoomResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/rooms/{gameType}/{roomID}": {
            "get": {
                "description": "Snapshot of seats, turn and lifecycle flags",
                "produces": ["application/json"],
                "tags": ["Room"],
                "summary": "Get a room",
                "parameters": [
                    {"type": "string", "description": "connect-4 or checkers", "name": "gameType", "in": "path", "required": true},
                    {"type": "string", "description": "Room id", "name": "roomID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/room.State"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/http.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Server stats",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/http.StatsResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/http.ErrorResponse"}}
                }
            }
        },
        "/ws/{gameType}": {
            "get": {
                "description": "Upgrades to a WebSocket and seats the caller. Without room_id the caller is matched into a public room.",
                "tags": ["Game"],
                "summary": "Join a game room",
                "parameters": [
                    {"type": "string", "description": "connect-4 or checkers", "name": "gameType", "in": "path", "required": true},
                    {"type": "string", "description": "Display name", "name": "nickname", "in": "query"},
                    {"type": "string", "description": "Private room id", "name": "room_id", "in": "query"},
                    {"type": "boolean", "description": "Play against the bot", "name": "bot", "in": "query"}
                ],
                "responses": {}
            }
        }
    },
    "definitions": {
        "http.CreateRoomRequest": {
            "type": "object",
            "required": ["game_type"],
            "properties": {
                "bot": {"type": "boolean"},
                "game_type": {"type": "string", "example": "connect-4"},
                "room_id": {"type": "string"},
                "visibility": {"type": "string", "example": "private"}
            }
        },
        "http.CreateRoomResponse": {
            "type": "object",
            "properties": {
                "game_type": {"type": "string"},
                "room_id": {"type": "string"},
                "visibility": {"type": "string"},
                "ws_url": {"type": "string"}
            }
        },
        "http.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        },
        "http.StatsResponse": {
            "type": "object",
            "properties": {
                "connections": {"type": "integer"},
                "rooms": {"type": "integer"}
            }
        },
        "room.State": {
            "type": "object",
            "properties": {
                "bot": {"type": "integer"},
                "created_at": {"type": "string"},
                "current_player": {"type": "integer"},
                "game_type": {"type": "string"},
                "over": {"type": "boolean"},
                "rematch_votes": {"type": "array", "items": {"type": "integer"}},
                "room_id": {"type": "string"},
                "seats": {"type": "object", "additionalProperties": {"type": "string"}},
                "started": {"type": "boolean"},
                "visibility": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tabletop Game Server API",
	Description:      "Connect-4 and Checkers rooms over WebSocket, with a heuristic fallback opponent (Go + Gin)",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
