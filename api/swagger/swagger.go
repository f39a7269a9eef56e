package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "StudyFlow API",
        "description": "Syllabus parsing and study schedule generation",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Upload", "description": "Syllabus ingestion"},
        {"name": "Schedules", "description": "Generated study schedules"},
        {"name": "Deadlines", "description": "Deadline management"},
        {"name": "Auth", "description": "Accounts"}
    ],
    "paths": {
        "/upload": {
            "post": {
                "tags": ["Upload"],
                "summary": "Upload a syllabus and generate a schedule",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true},
                    {"name": "email", "in": "formData", "type": "string", "required": true},
                    {"name": "wakeup", "in": "formData", "type": "integer"},
                    {"name": "sleep", "in": "formData", "type": "integer"},
                    {"name": "study_style", "in": "formData", "type": "string", "enum": ["pomodoro", "focused", "flexible"]},
                    {"name": "send_email", "in": "formData", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "Parsed and scheduled", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "413": {"description": "File too large"},
                    "415": {"description": "Unsupported file type"}
                }
            }
        },
        "/schedules/{email}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get a student's schedule",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No schedule for this email"}
                }
            }
        },
        "/schedules/{email}/summary": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Weekly summary",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{email}/export.pdf": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download as PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF payload"}
                }
            }
        },
        "/schedules/{email}/export.ics": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Download as iCalendar",
                "produces": ["text/calendar"],
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "ICS payload"}
                }
            }
        },
        "/schedules/{email}/email": {
            "post": {
                "tags": ["Schedules"],
                "summary": "Email the schedule to its owner",
                "parameters": [
                    {"name": "email", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "202": {"description": "Sent"},
                    "502": {"description": "Delivery failed"}
                }
            }
        },
        "/deadlines": {
            "get": {
                "tags": ["Deadlines"],
                "summary": "List deadlines",
                "parameters": [
                    {"name": "email", "in": "query", "type": "string", "required": true},
                    {"name": "course", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Deadlines"],
                "summary": "Add a manual deadline",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeadlineCreateRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/deadlines/{id}": {
            "put": {
                "tags": ["Deadlines"],
                "summary": "Update a deadline",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeadlineUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Deadlines"],
                "summary": "Delete a deadline",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/deadlines/export.csv": {
            "get": {
                "tags": ["Deadlines"],
                "summary": "Export deadlines as CSV",
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "email", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register a student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Deadline": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "email": {"type": "string"},
                "course_code": {"type": "string"},
                "course_name": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "type": {"type": "string", "enum": ["exam", "assignment", "project", "quiz", "presentation"]},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "Activity": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "activity": {"type": "string"},
                "type": {"type": "string"},
                "duration": {"type": "integer"},
                "description": {"type": "string"},
                "course": {"type": "string"},
                "priority": {"type": "string"}
            }
        },
        "DeadlineCreateRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "course_code": {"type": "string"},
                "course_name": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"}
            },
            "required": ["email", "date", "type", "title"]
        },
        "DeadlineUpdateRequest": {
            "type": "object",
            "properties": {
                "course_code": {"type": "string"},
                "course_name": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "name", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
