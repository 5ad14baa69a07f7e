package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PPDB Pengumuman API",
        "description": "Admission announcement service for zoning-based school placement",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Announcement", "description": "Admission decision and outcome lists"},
        {"name": "Dashboard", "description": "School and district admission dashboards"},
        {"name": "Report", "description": "Registration report exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/pengumuman/set-kelulusan": {
            "post": {
                "tags": ["Announcement"],
                "summary": "Run the admission decision for a school and track period",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DecisionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Track period or quota not found"},
                    "422": {"description": "Invalid zoning configuration"}
                }
            }
        },
        "/pengumuman/kelulusan/{id}": {
            "get": {
                "tags": ["Announcement"],
                "summary": "Per-school announcement list in ranking order",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "sekolah_id", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/zonasi/{id}": {
            "get": {
                "tags": ["Announcement"],
                "summary": "District-wide zoning registration list",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "filters", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/kuota-pendaftar": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Applicant volume against zoning quota per junior school",
                "parameters": [
                    {"name": "periode_jalur_id", "in": "query", "required": true, "type": "integer"},
                    {"name": "filters", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/laporan-pendaftaran": {
            "get": {
                "tags": ["Report"],
                "summary": "Download the flat registration report",
                "parameters": [
                    {"name": "periode_jalur_id", "in": "query", "type": "integer"},
                    {"name": "sekolah_id", "in": "query", "type": "integer"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["xlsx", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Report file"}
                }
            }
        },
        "/pengumuman/dashboard-sd/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Origin school dashboard counters",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "periode_jalur_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/dashboard-smp/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Destination school dashboard counters",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "periode_jalur_id", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/dashboard-dinas/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "District-wide dashboard counters",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/pengumuman/pendaftar-per-sekolah/{id}": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Ten most-applied-to schools for a track period",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "DecisionRequest": {
            "type": "object",
            "properties": {
                "sekolah_id": {"type": "integer"},
                "periode_jalur_id": {"type": "integer"}
            },
            "required": ["sekolah_id", "periode_jalur_id"]
        },
        "DecisionResult": {
            "type": "object",
            "properties": {
                "school_id": {"type": "integer"},
                "track_period_id": {"type": "integer"},
                "admitted": {"type": "integer"},
                "rejected": {"type": "integer"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
