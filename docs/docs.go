// Package docs registers the OpenAPI document served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/api/v1/vessels": {
            "get": {
                "description": "Every configured vessel in display order.",
                "produces": ["application/json"],
                "tags": ["vessels"],
                "summary": "Latest snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/vessels/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["vessels"],
                "summary": "One vessel",
                "parameters": [{"type": "string", "description": "Vessel id, e.g. FV1", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "vessel, batch_label, chart", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/vessels/{id}/adjustment": {
            "put": {
                "description": "Stores hypothetical dextrose/fruit additions and recomputes the vessel.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vessels"],
                "summary": "Set adjustment",
                "parameters": [
                    {"type": "string", "description": "Vessel id", "name": "id", "in": "path", "required": true},
                    {"description": "Adjustment payload", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.AdjustmentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["vessels"],
                "summary": "Clear adjustment",
                "parameters": [{"type": "string", "description": "Vessel id", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/refresh": {
            "post": {
                "description": "Asks the sheet to pull new responses, then rebuilds the snapshot.",
                "produces": ["application/json"],
                "tags": ["refresh"],
                "summary": "Manual refresh",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Snapshot"}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "429": {"description": "Too Many Requests", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "502": {"description": "Bad Gateway", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/logs": {
            "get": {
                "description": "Refresh audit events filtered by date. A date-only 'to' is inclusive of that whole day.",
                "produces": ["application/json"],
                "tags": ["logs"],
                "summary": "Refresh log",
                "parameters": [
                    {"type": "string", "example": "2025-08-01", "description": "Start of range", "name": "from", "in": "query"},
                    {"type": "string", "example": "2025-08-31", "description": "End of range", "name": "to", "in": "query"},
                    {"enum": ["START", "SUCCESS", "FAILURE", "TELEMETRY_UNAVAILABLE", "TRIGGER_FAILED"], "type": "string", "description": "Event type", "name": "type", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "count, events", "schema": {"type": "object"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        }
    },
    "definitions": {
        "handlers.AdjustmentRequest": {
            "type": "object",
            "properties": {
                "dex_count": {"description": "Dextrose units added for priming", "type": "integer", "example": 1},
                "fruit_volume": {"description": "Fruit added, in liters", "type": "number", "example": 50}
            }
        },
        "models.Snapshot": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "generated_at": {"type": "string"},
                "trigger": {"type": "string"},
                "telemetry_available": {"type": "boolean"},
                "vessels": {"type": "array", "items": {"type": "object"}}
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
	Title:            "Brewery Dashboard API",
	Description:      "Tank and batch state rebuilt from the brewery's form-response sheet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
