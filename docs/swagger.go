package docs

import "github.com/swaggo/swag"

// @title           Task Manager API
// @version         1.0
// @description     API for team task tracking: tasks, sub-tasks, activity logs, notifications and dashboard statistics
// @termsOfService  http://swagger.io/terms/

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @BasePath  /

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

// @tag.name Users
// @tag.description User management and notifications

// @tag.name Tasks
// @tag.description Task lifecycle, trash and dashboard

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}",
        "license": {"name": "MIT", "url": "https://opensource.org/licenses/MIT"}
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "CookieAuth": {"type": "apiKey", "name": "token", "in": "cookie"}
    },
    "tags": [
        {"name": "Users", "description": "User management and notifications"},
        {"name": "Tasks", "description": "Task lifecycle, trash and dashboard"}
    ],
    "paths": {
        "/api/user/register": {"post": {"tags": ["Users"], "summary": "Register a user", "responses": {"201": {"description": "Created"}}}},
        "/api/user/login": {"post": {"tags": ["Users"], "summary": "Log in and receive a session token", "responses": {"200": {"description": "OK"}}}},
        "/api/user/logout": {"post": {"tags": ["Users"], "summary": "Clear the session cookie", "responses": {"200": {"description": "OK"}}}},
        "/api/user/get-team": {"get": {"tags": ["Users"], "summary": "List users, optionally filtered", "responses": {"200": {"description": "OK"}}}},
        "/api/user/notifications": {"get": {"tags": ["Users"], "summary": "Unread notices addressed to the caller", "responses": {"200": {"description": "OK"}}}},
        "/api/user/read-noti": {"put": {"tags": ["Users"], "summary": "Mark one or all notices as read", "responses": {"200": {"description": "OK"}}}},
        "/api/user/profile": {"put": {"tags": ["Users"], "summary": "Update name, title and role", "responses": {"200": {"description": "OK"}}}},
        "/api/user/change-password": {"put": {"tags": ["Users"], "summary": "Change the caller's password", "responses": {"200": {"description": "OK"}}}},
        "/api/user/{id}": {
            "put": {"tags": ["Users"], "summary": "Activate or deactivate a user", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Users"], "summary": "Delete a user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/task": {"get": {"tags": ["Tasks"], "summary": "List tasks visible to the caller", "responses": {"200": {"description": "OK"}}}},
        "/api/task/create": {"post": {"tags": ["Tasks"], "summary": "Create a task, notify its team and add it to their task lists", "responses": {"201": {"description": "Created"}}}},
        "/api/task/duplicate/{id}": {"post": {"tags": ["Tasks"], "summary": "Duplicate a task", "responses": {"201": {"description": "Created"}}}},
        "/api/task/activity/{id}": {"post": {"tags": ["Tasks"], "summary": "Append an entry to a task's activity log", "responses": {"200": {"description": "OK"}}}},
        "/api/task/dashboard": {"get": {"tags": ["Tasks"], "summary": "Task statistics for the caller", "responses": {"200": {"description": "OK"}}}},
        "/api/task/{id}": {
            "get": {"tags": ["Tasks"], "summary": "Get a task with its team and activity authors", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Tasks"], "summary": "Move a task to the trash", "responses": {"200": {"description": "OK"}}}
        },
        "/api/task/create-subtask/{id}": {"put": {"tags": ["Tasks"], "summary": "Add a sub-task", "responses": {"200": {"description": "OK"}}}},
        "/api/task/update/{id}": {"put": {"tags": ["Tasks"], "summary": "Replace a task's fields and team", "responses": {"200": {"description": "OK"}}}},
        "/api/task/change-stage/{id}": {"put": {"tags": ["Tasks"], "summary": "Move a task to another stage", "responses": {"200": {"description": "OK"}}}},
        "/api/task/change-status/{taskId}/{subTaskId}": {"put": {"tags": ["Tasks"], "summary": "Mark a sub-task completed or uncompleted", "responses": {"200": {"description": "OK"}}}},
        "/api/task/delete-restore/{id}": {"delete": {"tags": ["Tasks"], "summary": "Delete or restore one or all trashed tasks", "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Task Manager API",
	Description:      "API for team task tracking: tasks, sub-tasks, activity logs, notifications and dashboard statistics",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
