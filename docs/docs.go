// Package docs は dev モードの /swagger で配信する API ドキュメント。
// ルートを増やしたらここにも追記する。
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "ログイン",
                "parameters": [
                    {"description": "credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.LoginResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/apierr.ErrorBody"}}
                }
            }
        },
        "/calendar/hijri": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["calendar"],
                "summary": "グレゴリオ暦の日付をヒジュラ暦で表示",
                "parameters": [
                    {"type": "string", "description": "YYYY-MM-DD", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/calendar.Display"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierr.ErrorBody"}}
                }
            }
        },
        "/absences": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["absences"],
                "summary": "欠勤一覧（新しい順）",
                "parameters": [
                    {"type": "string", "name": "teacher_id", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "to", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/attendance.ListAbsencesResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["absences"],
                "summary": "欠勤登録",
                "parameters": [
                    {"description": "absence", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/attendance.CreateAbsenceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/attendance.AbsenceRecord"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/apierr.ErrorBody"}}
                }
            }
        },
        "/tardiness": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tardiness"],
                "summary": "遅刻登録",
                "parameters": [
                    {"description": "tardiness", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/attendance.CreateTardinessRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/attendance.TardinessRecord"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/apierr.ErrorBody"}}
                }
            }
        },
        "/reports/absence": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["text/html"],
                "tags": ["reports"],
                "summary": "欠勤の説明要求文書",
                "parameters": [
                    {"type": "string", "name": "teacher_id", "in": "query", "required": true},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "from", "in": "query"},
                    {"type": "string", "description": "YYYY-MM-DD", "name": "to", "in": "query"},
                    {"type": "string", "description": "html | text | json", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/report.Letter"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/apierr.ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "apierr.ErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        },
        "auth.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "auth.LoginResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "token": {"type": "string"},
                "expiresAt": {"type": "string"},
                "user": {"$ref": "#/definitions/auth.User"}
            }
        },
        "calendar.Display": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "gregorian": {"type": "string"},
                "hijri": {"type": "string"},
                "dayName": {"type": "string"}
            }
        },
        "attendance.CreateAbsenceRequest": {
            "type": "object",
            "required": ["teacherId", "date"],
            "properties": {
                "teacherId": {"type": "string"},
                "date": {"type": "string"}
            }
        },
        "attendance.CreateTardinessRequest": {
            "type": "object",
            "required": ["teacherId", "date", "arrivalTime"],
            "properties": {
                "teacherId": {"type": "string"},
                "date": {"type": "string"},
                "arrivalTime": {"type": "string"}
            }
        },
        "attendance.AbsenceRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"},
                "date": {"type": "string"},
                "hijriDate": {"type": "string"},
                "dayName": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "attendance.TardinessRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacherId": {"type": "string"},
                "teacherName": {"type": "string"},
                "date": {"type": "string"},
                "hijriDate": {"type": "string"},
                "dayName": {"type": "string"},
                "arrivalTime": {"type": "string"},
                "cutoffTime": {"type": "string"},
                "lateByMinutes": {"type": "integer"},
                "createdAt": {"type": "string"}
            }
        },
        "attendance.ListAbsencesResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/attendance.AbsenceRecord"}},
                "total": {"type": "integer"}
            }
        },
        "report.Letter": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "text": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "PRESENCE API",
	Description:      "教員の欠勤・遅刻管理",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
