// Package docs is generated by swaggo/swag from the godoc annotations in
// internal/server. Regenerate with `go generate ./...`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/clones": {
            "get": {
                "description": "List the clone requests issued from this dashboard, newest first",
                "produces": ["application/json"],
                "tags": ["vms"],
                "summary": "List clone requests",
                "parameters": [
                    {"type": "integer", "default": 50, "description": "Number of entries", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.ClonesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/api/status": {
            "get": {
                "description": "Probe every backend concurrently and report reachability",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Dashboard status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.SystemStatusResponse"}}
                }
            }
        },
        "/api/tmux/sessions": {
            "get": {
                "description": "List the sessions known to the tmux client backend",
                "produces": ["application/json"],
                "tags": ["tmux"],
                "summary": "List tmux sessions",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.SessionsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/api/tmux/sessions/{id}": {
            "get": {
                "description": "Get one session with its commands and their output",
                "produces": ["application/json"],
                "tags": ["tmux"],
                "summary": "Get a tmux session",
                "parameters": [
                    {"type": "string", "description": "Session ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TmuxSessionDetail"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/api/vms": {
            "get": {
                "description": "List the VMs known to the virsh sandbox backend",
                "produces": ["application/json"],
                "tags": ["vms"],
                "summary": "List VMs",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.VMsResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}},
                    "504": {"description": "Gateway Timeout", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/api/vms/{uuid}/clone": {
            "post": {
                "description": "Ask the virsh sandbox backend to clone the VM. The request runs in the background; its outcome is published on /ws/notifications and recorded in /api/clones.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["vms"],
                "summary": "Clone a VM",
                "parameters": [
                    {"type": "string", "description": "Source VM UUID", "name": "uuid", "in": "path", "required": true},
                    {"description": "Display name of the VM", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/server.CloneVMRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/server.CloneAcceptedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.HTTPErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Check if the dashboard is up. Does not contact the backends.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/ws/notifications": {
            "get": {
                "description": "WebSocket that pushes a JSON notification whenever a clone settles",
                "tags": ["notifications", "websocket"],
                "summary": "Notification stream",
                "responses": {
                    "101": {"description": "Switching Protocols", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "errors.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "errors.HTTPErrorResponse": {
            "type": "object",
            "properties": {
                "context": {"type": "object", "additionalProperties": true},
                "error": {"$ref": "#/definitions/errors.ErrorInfo"}
            }
        },
        "interfaces.CloneRecord": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "error": {"type": "string"},
                "finished_at": {"type": "string"},
                "id": {"type": "string"},
                "status": {"type": "string"},
                "vm_name": {"type": "string"},
                "vm_uuid": {"type": "string"}
            }
        },
        "server.BackendHealth": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "latency_ms": {"type": "integer", "example": 12},
                "name": {"type": "string", "example": "virsh-sandbox"},
                "status": {"type": "string", "example": "healthy"}
            }
        },
        "server.CloneAcceptedResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Clone requested"},
                "status": {"type": "string", "example": "cloning"},
                "uuid": {"type": "string", "example": "4b1c2a9e-8f3d-4c55-9d7e-0a1b2c3d4e5f"}
            }
        },
        "server.CloneVMRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "ubuntu-base"}
            }
        },
        "server.ClonesResponse": {
            "type": "object",
            "properties": {
                "clones": {"type": "array", "items": {"$ref": "#/definitions/interfaces.CloneRecord"}},
                "in_flight": {"type": "string"},
                "total": {"type": "integer", "example": 2}
            }
        },
        "server.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "healthy"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "server.SessionsResponse": {
            "type": "object",
            "properties": {
                "sessions": {"type": "array", "items": {"$ref": "#/definitions/types.TmuxSession"}},
                "total": {"type": "integer", "example": 4}
            }
        },
        "server.SystemStatusResponse": {
            "type": "object",
            "properties": {
                "backends": {"type": "array", "items": {"$ref": "#/definitions/server.BackendHealth"}},
                "in_flight_clone": {"type": "string"},
                "status": {"type": "string", "example": "healthy"},
                "uptime": {"type": "string", "example": "2h30m15s"},
                "version": {"type": "string", "example": "0.1.0"}
            }
        },
        "server.VMsResponse": {
            "type": "object",
            "properties": {
                "total": {"type": "integer", "example": 3},
                "vms": {"type": "array", "items": {"$ref": "#/definitions/types.VM"}}
            }
        },
        "types.CommandOutput": {
            "type": "object",
            "properties": {
                "command": {"type": "string", "example": "uname -a"},
                "output": {"type": "string", "example": "Linux sandbox 6.1.0 x86_64 GNU/Linux"}
            }
        },
        "types.TmuxSession": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "abc-123"},
                "status": {"type": "string", "example": "live"},
                "vmCloneId": {"type": "string", "example": "sbx-7f3a"}
            }
        },
        "types.TmuxSessionDetail": {
            "type": "object",
            "properties": {
                "commands": {"type": "array", "items": {"$ref": "#/definitions/types.CommandOutput"}},
                "id": {"type": "string", "example": "abc-123"},
                "numberOfPanes": {"type": "integer", "example": 2},
                "status": {"type": "string", "example": "live"}
            }
        },
        "types.VM": {
            "type": "object",
            "properties": {
                "ipAddress": {"type": "string", "example": "192.168.122.10"},
                "name": {"type": "string", "example": "ubuntu-base"},
                "uuid": {"type": "string", "example": "4b1c2a9e-8f3d-4c55-9d7e-0a1b2c3d4e5f"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8090",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "sandboxdash API",
	Description:      "JSON mirror of the sandbox dashboard: VMs and sandbox clones from the virsh sandbox API, tmux sessions from the tmux client API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
