package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School BI API",
        "description": "Aggregate reporting API for the school management dashboards",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Operator authentication"},
        {"name": "Dashboard", "description": "Dashboard aggregates"},
        {"name": "Analytics", "description": "Per-metric drilldowns"},
        {"name": "Reports", "description": "File exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate a dashboard operator",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/LoginResponse"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/academic": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Academic performance dashboard",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/financial": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Financial dashboard",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/operational": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Operational dashboard",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/overview": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Cross-domain overview KPIs",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/map": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "School locator map pins",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/exams": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Exam score statistics",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/dashboard/analytics": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Metric drilldown",
                "parameters": [
                    {"name": "metric", "in": "query", "required": true, "type": "string", "enum": ["dropout", "health-score", "siblings", "nps", "total-students"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unknown metric", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Aggregation failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/reports/academic/export": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export the academic dashboard",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Render failed", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LoginResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expiresAt": {"type": "string", "format": "date-time"},
                "fullName": {"type": "string"}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
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
