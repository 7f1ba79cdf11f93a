// Package docs registers the OpenAPI description of the order service with
// swag so gin-swagger can serve it. It mirrors the swag annotations in
// cmd/order-service; regenerate it with go generate after changing them.
package docs

//go:generate swag init -d ../cmd/order-service,../internal/order -g main.go -o . --outputTypes go

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
        "/orders": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "List orders",
                "parameters": [
                    {
                        "type": "string",
                        "description": "date desc (default), date asc, total_price asc, total_price desc",
                        "name": "sort",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/main.ListResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                }
            }
        },
        "/orders/export": {
            "get": {
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "orders"
                ],
                "summary": "Export orders as CSV",
                "parameters": [
                    {
                        "type": "string",
                        "description": "same keys as GET /orders",
                        "name": "sort",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "orders.csv",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                }
            }
        },
        "/webhooks/orders": {
            "post": {
                "description": "Upserts the order carried by an orders/create or orders/updated delivery.",
                "consumes": [
                    "application/json"
                ],
                "tags": [
                    "webhooks"
                ],
                "summary": "Receive an order webhook",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Webhook topic, e.g. orders/create",
                        "name": "X-Shopify-Topic",
                        "in": "header",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Originating shop",
                        "name": "X-Shopify-Shop-Domain",
                        "in": "header"
                    },
                    {
                        "type": "string",
                        "description": "Base64 HMAC of the body, required when a secret is configured",
                        "name": "X-Shopify-Hmac-Sha256",
                        "in": "header"
                    },
                    {
                        "description": "Order resource",
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/order.Payload"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK"
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    },
                    "404": {
                        "description": "Unhandled webhook topic",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/main.HTTPError"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "main.HTTPError": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "unknown sort"
                }
            }
        },
        "main.ListResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/main.OrderView"
                    }
                },
                "sort": {
                    "type": "string",
                    "example": "date desc"
                }
            }
        },
        "main.OrderView": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "customer_address": {
                    "type": "string"
                },
                "customer_email": {
                    "type": "string"
                },
                "customer_full_name": {
                    "type": "string"
                },
                "edit_url": {
                    "type": "string",
                    "example": "/app/orderEdit/450789469"
                },
                "id": {
                    "type": "integer"
                },
                "order_id": {
                    "type": "string"
                },
                "order_number": {
                    "type": "string"
                },
                "order_url": {
                    "type": "string",
                    "example": "https://admin.shopify.com/store/remix-app-exam/apps/remix-app-exam/app/order/450789469"
                },
                "payment_gateway": {
                    "type": "string"
                },
                "tags": {
                    "type": "string"
                },
                "total_price": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "order.Address": {
            "type": "object",
            "properties": {
                "address1": {
                    "type": "string",
                    "example": "Chestnut Street 92"
                },
                "city": {
                    "type": "string",
                    "example": "Louisville"
                },
                "country": {
                    "type": "string",
                    "example": "United States"
                },
                "province": {
                    "type": "string",
                    "example": "Kentucky"
                }
            }
        },
        "order.Customer": {
            "type": "object",
            "properties": {
                "default_address": {
                    "$ref": "#/definitions/order.Address"
                },
                "email": {
                    "type": "string",
                    "example": "bob.norman@mail.example.com"
                },
                "first_name": {
                    "type": "string",
                    "example": "Bob"
                },
                "last_name": {
                    "type": "string",
                    "example": "Norman"
                }
            }
        },
        "order.Payload": {
            "type": "object",
            "required": [
                "id",
                "payment_gateway_names"
            ],
            "properties": {
                "customer": {
                    "$ref": "#/definitions/order.Customer"
                },
                "id": {
                    "type": "integer",
                    "example": 450789469
                },
                "order_number": {
                    "type": "integer",
                    "example": 1001
                },
                "payment_gateway_names": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "tags": {
                    "type": "string",
                    "example": "vip, wholesale"
                },
                "total_price": {
                    "type": "string",
                    "example": "598.94"
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
	Title:            "Order webhook service",
	Description:      "Receives platform order webhooks, stores orders and serves the admin list and CSV export.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
