package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Northside Portal API",
        "description": "Student portal backend: flex registration, Hoofbeat, events, grades, attendance",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Login and account management"},
        {"name": "Flex", "description": "Flex period listing and registration"},
        {"name": "Hoofbeat", "description": "School news feed"},
        {"name": "Events", "description": "School calendar"},
        {"name": "Grades", "description": "Course grades and report card export"},
        {"name": "Attendance", "description": "Attendance summary and tardies"},
        {"name": "Profile", "description": "Student profile and schedule"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a user",
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid username or password"}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Create a user account (admin only)",
                "responses": {
                    "201": {"description": "User created"},
                    "403": {"description": "Not authorized"}
                }
            }
        },
        "/flexes": {
            "get": {
                "tags": ["Flex"],
                "summary": "List flex periods",
                "responses": {"200": {"description": "Period listing"}}
            }
        },
        "/flexes/{flexId}": {
            "get": {
                "tags": ["Flex"],
                "summary": "Get the options of a flex period",
                "parameters": [
                    {"name": "flexId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Period with options"},
                    "404": {"description": "Flex period not found"}
                }
            }
        },
        "/flexes/{flexId}/{optionId}": {
            "post": {
                "tags": ["Flex"],
                "summary": "Register the authenticated student for a flex option",
                "parameters": [
                    {"name": "flexId", "in": "path", "required": true, "type": "string"},
                    {"name": "optionId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Successfully registered"},
                    "400": {"description": "Period unavailable or option full"},
                    "404": {"description": "Period or option not found"}
                }
            }
        },
        "/hoofbeat": {
            "get": {
                "tags": ["Hoofbeat"],
                "summary": "Get the Hoofbeat front page",
                "responses": {"200": {"description": "Front page sections"}}
            }
        },
        "/hoofbeat/{slug}": {
            "get": {
                "tags": ["Hoofbeat"],
                "summary": "Get an article by slug",
                "parameters": [
                    {"name": "slug", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Article"},
                    "404": {"description": "Article not found"}
                }
            }
        },
        "/events": {
            "get": {
                "tags": ["Events"],
                "summary": "List events, optionally scoped to a month",
                "responses": {"200": {"description": "Events"}}
            }
        },
        "/events/{date}": {
            "get": {
                "tags": ["Events"],
                "summary": "List events for one date",
                "parameters": [
                    {"name": "date", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "Events"}}
            }
        },
        "/grades": {
            "get": {
                "tags": ["Grades"],
                "summary": "List the authenticated student's grades",
                "responses": {"200": {"description": "Grades"}}
            }
        },
        "/grades/export": {
            "get": {
                "tags": ["Grades"],
                "summary": "Download the report card as csv or pdf",
                "responses": {"200": {"description": "Report card file"}}
            }
        },
        "/grades/{courseId}": {
            "get": {
                "tags": ["Grades"],
                "summary": "Get the grade breakdown for one course",
                "parameters": [
                    {"name": "courseId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Grade detail"},
                    "404": {"description": "Grade details not found"}
                }
            }
        },
        "/attendance": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Get the attendance summary and tardies",
                "responses": {"200": {"description": "Attendance overview"}}
            }
        },
        "/attendance/tardies/{tardyId}": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Get one tardy record",
                "parameters": [
                    {"name": "tardyId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Tardy record"},
                    "404": {"description": "Tardy record not found"}
                }
            }
        },
        "/profile": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the profile card",
                "responses": {"200": {"description": "Profile card"}}
            }
        },
        "/profile/info": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the detailed student record",
                "responses": {"200": {"description": "Student record"}}
            }
        },
        "/profile/schedule": {
            "get": {
                "tags": ["Profile"],
                "summary": "Get the daily schedule",
                "responses": {"200": {"description": "Schedule entries"}}
            }
        }
    },
    "definitions": {
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
                "pagination": {"type": "object"}
            }
        },
        "RegistrationResult": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
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
