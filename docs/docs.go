// Package docs registers the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/app/serve.go -o docs
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
        "/duels": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["duels"],
                "summary": "List duels for the caller, grouped into buckets",
                "parameters": [
                    {"type": "string", "description": "active, pending or completed", "name": "bucket", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["duels"],
                "summary": "Invite a friend to a duel",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "403": {"description": "Forbidden"}, "409": {"description": "Conflict"}}
            }
        },
        "/duels/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["duels"],
                "summary": "Get one duel",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/duels/{id}/respond": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["duels"],
                "summary": "Accept or decline an invitation",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "410": {"description": "Gone"}}
            }
        },
        "/duels/{id}/activate": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["duels"],
                "summary": "Start an accepted duel and materialize its quizzes",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "410": {"description": "Gone"}}
            }
        },
        "/duels/{id}/answers": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["duels"],
                "summary": "Record a quiz result for the caller",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "410": {"description": "Gone"}}
            }
        },
        "/invitations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["invitations"],
                "summary": "List invitations sent or received by the caller",
                "parameters": [{"type": "string", "description": "sent or received", "name": "direction", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/events": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/event-stream"],
                "tags": ["events"],
                "summary": "Stream duel events addressed to the caller",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/admin/duels/sweep": {
            "post": {
                "security": [{"ApiKeyAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Settle every duel whose window has lapsed",
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}
            }
        }
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "X-API-Key", "in": "header"},
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "QuizDuel API",
	Description:      "Asynchronous quiz duels between friends.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
