// Package docs registers the OpenAPI description of the HTTP API with swag.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/questions": {
            "get": {
                "summary": "Sample up to three eligible questions",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "limit", "in": "query", "description": "batch size, clamped to 0..3"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/QuestionsResponse"}},
                    "500": {"description": "store failure", "schema": {"$ref": "#/definitions/Error"}}
                }
            },
            "patch": {
                "summary": "Record one rating attempt for a question",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttemptRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Message"}},
                    "400": {"description": "questionId missing", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "unknown question", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/submissions": {
            "get": {
                "summary": "List submissions newest first",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Submission"}}}}
            },
            "post": {
                "summary": "Store a submission",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Submission"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Receipt"}},
                    "400": {"description": "body is not JSON", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/sessions": {
            "post": {
                "summary": "Start an annotation session",
                "responses": {"201": {"description": "Created"}, "400": {"description": "annotatorId missing"}}
            }
        },
        "/api/sessions/{id}": {
            "get": {
                "summary": "Resume an annotation session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "expired or unknown"}}
            }
        },
        "/api/sessions/{id}/answers": {
            "post": {
                "summary": "Rate one question of the session",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "invalid answer"}, "404": {"description": "expired or unknown"}}
            }
        },
        "/api/admin/login": {
            "post": {
                "summary": "Exchange the admin password for a session cookie",
                "responses": {
                    "200": {"description": "OK, auth_token cookie set"},
                    "401": {"description": "wrong password"},
                    "500": {"description": "server secrets not configured"}
                }
            }
        },
        "/api/auth/status": {
            "get": {"summary": "Report whether the caller holds a valid admin cookie", "responses": {"200": {"description": "OK"}}}
        },
        "/api/admin/questions": {
            "get": {
                "summary": "Page through every question",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/QuestionsResponse"}}, "401": {"description": "no admin cookie"}}
            }
        },
        "/api/admin/stats": {
            "get": {"summary": "Submission totals and recent activity", "responses": {"200": {"description": "OK"}, "401": {"description": "no admin cookie"}}}
        },
        "/api/admin/export/annotators.csv": {
            "get": {"summary": "One row per annotator", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}, "401": {"description": "no admin cookie"}}}
        },
        "/api/admin/export/results.csv": {
            "get": {"summary": "One row per submission", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}, "401": {"description": "no admin cookie"}}}
        },
        "/api/admin/ws": {
            "get": {"summary": "Live feed of submissions and attempts (WebSocket)", "responses": {"101": {"description": "Switching Protocols"}, "401": {"description": "no admin cookie"}}}
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"error": {"type": "string"}}},
        "Message": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "AttemptRequest": {"type": "object", "properties": {"questionId": {"type": "string"}}},
        "Receipt": {"type": "object", "properties": {"success": {"type": "boolean"}, "id": {"type": "string"}, "timestamp": {"type": "string"}}},
        "Evaluation": {
            "type": "object",
            "properties": {
                "helpfulness": {"type": "integer"},
                "clarity": {"type": "integer"},
                "reassurance": {"type": "integer"},
                "feasibility": {"type": "integer"},
                "medicalAccuracy": {"type": "integer"}
            }
        },
        "Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "personalInfo": {
                    "type": "object",
                    "properties": {
                        "annotatorId": {"type": "string"},
                        "gender": {"type": "string"},
                        "ageGroup": {"type": "string"},
                        "educationLevel": {"type": "string"}
                    }
                },
                "evaluation": {
                    "type": "object",
                    "properties": {
                        "response1": {"$ref": "#/definitions/Evaluation"},
                        "response2": {"$ref": "#/definitions/Evaluation"}
                    }
                },
                "timestamp": {"type": "string"},
                "questionId": {"type": "string"}
            }
        },
        "QuestionsResponse": {
            "type": "object",
            "properties": {
                "questions": {"type": "array", "items": {"type": "object"}},
                "pagination": {
                    "type": "object",
                    "properties": {
                        "currentPage": {"type": "integer"},
                        "totalPages": {"type": "integer"},
                        "totalCount": {"type": "integer"},
                        "hasNext": {"type": "boolean"},
                        "hasPrev": {"type": "boolean"}
                    }
                }
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
	Title:            "Medical dialogue annotation API",
	Description:      "Collects annotator ratings of candidate doctor responses.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
