package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "description": "Questions and answers kept in a single JSON file",
        "title": "Responder API",
        "version": "1.0"
    },
    "host": "localhost:3000",
    "basePath": "/",
    "schemes": ["http"],
    "paths": {
        "/": {
            "get": {
                "tags": ["meta"],
                "summary": "Welcome message",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/MessageResponse"}}
                }
            }
        },
        "/questions": {
            "get": {
                "tags": ["questions"],
                "summary": "List questions",
                "description": "List every question with its answers, in the order they were added",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Question"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["questions"],
                "summary": "Add a question",
                "description": "Answers in the body are accepted but not stored",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateQuestionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}": {
            "get": {
                "tags": ["questions"],
                "summary": "Get question by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "questionId", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Question"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}/answers": {
            "get": {
                "tags": ["answers"],
                "summary": "List answers of a question",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "questionId", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Answer"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "post": {
                "tags": ["answers"],
                "summary": "Add an answer to a question",
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "questionId", "type": "string", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/CreateAnswerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/MessageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/questions/{questionId}/answers/{answerId}": {
            "get": {
                "tags": ["answers"],
                "summary": "Get answer by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"in": "path", "name": "questionId", "type": "string", "required": true},
                    {"in": "path", "name": "answerId", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Answer"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Health Check",
                "description": "Check if server is running",
                "responses": {
                    "200": {"description": "Server is healthy"}
                }
            }
        }
    },
    "definitions": {
        "Answer": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "9b2f6a0e-2c1d-4f7e-9a57-5c1f0f7f0c11"},
                "summary": {"type": "string", "example": "It is egg-shaped."},
                "author": {"type": "string", "example": "Dr Strange"}
            }
        },
        "Question": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "summary": {"type": "string", "example": "What is my name?"},
                "author": {"type": "string", "example": "Jack London"},
                "answers": {"type": "array", "items": {"$ref": "#/definitions/Answer"}}
            }
        },
        "CreateQuestionRequest": {
            "type": "object",
            "required": ["summary", "author"],
            "properties": {
                "summary": {"type": "string"},
                "author": {"type": "string"},
                "answers": {"type": "array", "items": {"type": "string"}}
            }
        },
        "CreateAnswerRequest": {
            "type": "object",
            "required": ["summary", "author"],
            "properties": {
                "summary": {"type": "string"},
                "author": {"type": "string"}
            }
        },
        "MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "id": {"type": "string"}
            }
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Responder API",
	Description:      "Questions and answers kept in a single JSON file",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
