// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main/main.go -o docs
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
        "/tax/calculations": {
            "post": {"tags": ["tax"], "summary": "Calculate tax for a transaction", "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unknown jurisdiction"}}}
        },
        "/tax/calculations/{calculation_id}": {
            "get": {"tags": ["tax"], "summary": "Get a tax calculation", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/tax/calculations/{calculation_id}/corrections": {
            "post": {"tags": ["tax"], "summary": "Correct a tax calculation", "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "404": {"description": "Not Found"}}}
        },
        "/tax/jurisdictions": {
            "get": {"tags": ["tax"], "summary": "List supported jurisdictions", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/status-cards/validate": {
            "post": {"tags": ["exemptions"], "summary": "Validate a status card", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/status-cards/{card_number}/status": {
            "patch": {"tags": ["exemptions"], "summary": "Change a status card's status", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/exemptions/bands/{band_number}": {
            "put": {"tags": ["exemptions"], "summary": "Create or replace a band exemption", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/exemptions/treaties/{treaty_number}": {
            "put": {"tags": ["exemptions"], "summary": "Create or replace a treaty exemption", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/returns": {
            "post": {"tags": ["returns"], "summary": "File a draft return", "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "409": {"description": "Period overlap"}}}
        },
        "/returns/batch": {
            "post": {"tags": ["returns"], "summary": "Queue period-close returns", "produces": ["application/json"], "responses": {"202": {"description": "Accepted"}}}
        },
        "/returns/{return_id}": {
            "get": {"tags": ["returns"], "summary": "Get a tax return", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/returns/{return_id}/ready": {
            "post": {"tags": ["returns"], "summary": "Mark a return ready", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid return state"}}}
        },
        "/returns/{return_id}/submit": {
            "post": {"tags": ["returns"], "summary": "Submit a return", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid return state"}}}
        },
        "/returns/{return_id}/amend": {
            "post": {"tags": ["returns"], "summary": "Amend a filed return", "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "409": {"description": "Invalid return state"}}}
        },
        "/remittances/{remittance_id}/payments": {
            "post": {"tags": ["returns"], "summary": "Record a remittance payment", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/compliance/{entity_id}": {
            "get": {"tags": ["compliance"], "summary": "Get an entity's compliance record", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Tax Engine API",
	Description:      "Tax calculation, exemption and filing API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
