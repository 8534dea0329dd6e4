// Package swagger serves the embedded OpenAPI document.
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Admission Auction API",
        "description": "Token-based course enrollment auction: fee payments mint tokens, students bid them on courses, and clearing awards seats to the highest bidders.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new principal",
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a principal",
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/roles": {
            "post": {
                "tags": ["Roles"],
                "summary": "Grant a role (COO only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Admit a student (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get a student account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/settings/fees-per-uoc": {
            "get": {
                "tags": ["Treasury"],
                "summary": "Get the fee rate",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "put": {
                "tags": ["Treasury"],
                "summary": "Set the fee rate (COO only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/fees/payments": {
            "post": {
                "tags": ["Treasury"],
                "summary": "Pay fees and mint tokens",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "403": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/transfers": {
            "post": {
                "tags": ["Treasury"],
                "summary": "Transfer tokens between students",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/withdrawals": {
            "post": {
                "tags": ["Treasury"],
                "summary": "Withdraw platform funds (COO only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/treasury/balance": {
            "get": {
                "tags": ["Treasury"],
                "summary": "Platform balance",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/courses": {
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Modify an open course (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/courses/{id}/bids": {
            "get": {
                "tags": ["Courses"],
                "summary": "List standing bids (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
            },
            "post": {
                "tags": ["Bids"],
                "summary": "Place a bid",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "put": {
                "tags": ["Bids"],
                "summary": "Modify a bid",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/courses/{id}/close": {
            "post": {
                "tags": ["Courses"],
                "summary": "Close enrollment and clear bids (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/courses/{id}/export": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export enrollment outcome (UNI_ADMIN only)",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
            }
        },
        "/exports/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download an export via signed token",
                "responses": {"200": {"description": "file stream"}}
            }
        },
        "/audit/events": {
            "get": {
                "tags": ["Audit"],
                "summary": "List audit events",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"schema": {"$ref": "#/definitions/Envelope"}}}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "Envelope": {
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
