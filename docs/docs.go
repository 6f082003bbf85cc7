// Package docs holds the Swagger 2.0 document served under /swagger/. It is
// kept in the layout swag init produces and is edited by hand alongside the
// handler annotations in internal/api.
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
        "/catalog": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "Get the test catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/api.TopicResponse"}}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/questions/topics": {
            "get": {
                "description": "Distinct topic labels of the flat question set, in first-seen order.",
                "produces": ["application/json"],
                "tags": ["Questions"],
                "summary": "List question topics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.TopicsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions": {
            "post": {
                "description": "Resolve the question list for the chosen mode and open a session positioned on the first question.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Start a quiz session",
                "parameters": [
                    {"description": "Selection", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.StartSessionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "test not found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "422": {"description": "no questions match the topics", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "question source unavailable", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get a quiz session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["Sessions"],
                "summary": "End a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/advance": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Go to the next question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.AdvanceResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "current question unanswered", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/answer": {
            "put": {
                "description": "Record (or overwrite) the selected option for the current question. The value is not checked against the options. A completed session must be reset first.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Answer the current question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true},
                    {"description": "Selected option", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/api.RecordAnswerRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "session already completed", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Restart a session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/retreat": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Go to the previous question",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.SessionResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/sessions/{sessionID}/score": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Sessions"],
                "summary": "Get the score",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "sessionID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.ScoreResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "api.AdvanceResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "moved": {"type": "boolean"},
                "session": {"$ref": "#/definitions/api.SessionResponse"}
            }
        },
        "api.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "session not found"},
                "retryable": {"type": "boolean", "example": false}
            }
        },
        "api.QuestionResponse": {
            "type": "object",
            "properties": {
                "image": {"type": "string"},
                "options": {"type": "array", "items": {"type": "string"}},
                "text": {"type": "string"},
                "topic": {"type": "string"}
            }
        },
        "api.RecordAnswerRequest": {
            "type": "object",
            "properties": {
                "answer": {"type": "string", "example": "Ulaanbaatar"}
            }
        },
        "api.ScoreResponse": {
            "type": "object",
            "properties": {
                "completed": {"type": "boolean"},
                "correct": {"type": "integer"},
                "percentage": {"type": "integer"},
                "session_id": {"type": "string"},
                "summary": {"type": "string", "example": "You answered 4 of 5 questions correctly."},
                "total": {"type": "integer"}
            }
        },
        "api.SessionResponse": {
            "type": "object",
            "properties": {
                "can_advance": {"type": "boolean"},
                "can_retreat": {"type": "boolean"},
                "completed": {"type": "boolean"},
                "heading": {"type": "string", "example": "Question 1/5"},
                "id": {"type": "string"},
                "index": {"type": "integer"},
                "is_last": {"type": "boolean"},
                "mode": {"type": "string"},
                "next_label": {"type": "string", "example": "Next"},
                "progress": {"type": "string", "example": "1/5"},
                "progress_percent": {"type": "integer"},
                "question": {"$ref": "#/definitions/api.QuestionResponse"},
                "selected_answer": {"type": "string"},
                "state": {"type": "string", "example": "in_progress"},
                "total": {"type": "integer"}
            }
        },
        "api.StartSessionRequest": {
            "type": "object",
            "properties": {
                "mode": {"type": "string", "enum": ["flat", "topics", "test"], "example": "topics"},
                "test_id": {"type": "string", "example": "geography-1"},
                "topics": {"type": "array", "items": {"type": "string"}, "example": ["geography"]}
            }
        },
        "api.TestResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "api.TopicResponse": {
            "type": "object",
            "properties": {
                "description": {"type": "string"},
                "name": {"type": "string"},
                "tests": {"type": "array", "items": {"$ref": "#/definitions/api.TestResponse"}}
            }
        },
        "api.TopicsResponse": {
            "type": "object",
            "properties": {
                "topics": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Alash Quiz API",
	Description:      "Multiple-choice quiz engine: pick questions by topic or test, answer, navigate and get scored.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
