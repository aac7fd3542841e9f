// Package openapi 注册 /swagger 使用的 OpenAPI 文档，与 handler 上的 swag 注释保持一致
package openapi

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
		"/healthcheck": {
			"get": {
				"tags": [
					"系统"
				],
				"summary": "健康检查",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/users/register": {
			"post": {
				"tags": [
					"用户"
				],
				"summary": "用户注册",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/users/login": {
			"post": {
				"tags": [
					"用户"
				],
				"summary": "用户登录",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/users/refresh-token": {
			"post": {
				"tags": [
					"用户"
				],
				"summary": "刷新 token",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/users/logout": {
			"post": {
				"tags": [
					"用户"
				],
				"summary": "用户登出",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/change-password": {
			"post": {
				"tags": [
					"用户"
				],
				"summary": "修改密码",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/current-user": {
			"get": {
				"tags": [
					"用户"
				],
				"summary": "当前用户",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/update-account": {
			"patch": {
				"tags": [
					"用户"
				],
				"summary": "修改账户信息",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/avatar": {
			"patch": {
				"tags": [
					"用户"
				],
				"summary": "更换头像",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/cover-image": {
			"patch": {
				"tags": [
					"用户"
				],
				"summary": "更换封面",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/users/c/{username}": {
			"get": {
				"tags": [
					"用户"
				],
				"summary": "频道主页",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "string",
						"name": "username",
						"in": "path",
						"required": true
					}
				]
			}
		},
		"/users/history": {
			"get": {
				"tags": [
					"用户"
				],
				"summary": "观看历史",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"用户"
				],
				"summary": "清空观看历史",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/videos": {
			"get": {
				"tags": [
					"视频"
				],
				"summary": "视频列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			},
			"post": {
				"tags": [
					"视频"
				],
				"summary": "发布视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/videos/search": {
			"get": {
				"tags": [
					"视频"
				],
				"summary": "搜索视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				}
			}
		},
		"/videos/{videoId}": {
			"get": {
				"tags": [
					"视频"
				],
				"summary": "视频详情",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				]
			},
			"patch": {
				"tags": [
					"视频"
				],
				"summary": "修改视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"视频"
				],
				"summary": "删除视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/videos/toggle/publish/{videoId}": {
			"patch": {
				"tags": [
					"视频"
				],
				"summary": "切换发布状态",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/comments/{videoId}": {
			"get": {
				"tags": [
					"评论"
				],
				"summary": "视频评论列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				]
			},
			"post": {
				"tags": [
					"评论"
				],
				"summary": "发表评论",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/comments/c/{commentId}": {
			"patch": {
				"tags": [
					"评论"
				],
				"summary": "修改评论",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"评论"
				],
				"summary": "删除评论",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/likes/toggle/v/{videoId}": {
			"post": {
				"tags": [
					"点赞"
				],
				"summary": "切换视频点赞",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/likes/toggle/c/{commentId}": {
			"post": {
				"tags": [
					"点赞"
				],
				"summary": "切换评论点赞",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "commentId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/likes/toggle/t/{tweetId}": {
			"post": {
				"tags": [
					"点赞"
				],
				"summary": "切换动态点赞",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "tweetId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/likes/videos": {
			"get": {
				"tags": [
					"点赞"
				],
				"summary": "点赞过的视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/subscriptions/c/{channelId}": {
			"post": {
				"tags": [
					"订阅"
				],
				"summary": "切换订阅",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "channelId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"get": {
				"tags": [
					"订阅"
				],
				"summary": "订阅者列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "channelId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/subscriptions/u/{subscriberId}": {
			"get": {
				"tags": [
					"订阅"
				],
				"summary": "订阅的频道",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "subscriberId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/playlist": {
			"post": {
				"tags": [
					"播放列表"
				],
				"summary": "创建播放列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/playlist/user/{userId}": {
			"get": {
				"tags": [
					"播放列表"
				],
				"summary": "用户播放列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/playlist/{playlistId}": {
			"get": {
				"tags": [
					"播放列表"
				],
				"summary": "播放列表详情",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"patch": {
				"tags": [
					"播放列表"
				],
				"summary": "修改播放列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"播放列表"
				],
				"summary": "删除播放列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/playlist/add/{videoId}/{playlistId}": {
			"patch": {
				"tags": [
					"播放列表"
				],
				"summary": "添加视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/playlist/remove/{videoId}/{playlistId}": {
			"patch": {
				"tags": [
					"播放列表"
				],
				"summary": "移除视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "videoId",
						"in": "path",
						"required": true
					},
					{
						"type": "integer",
						"name": "playlistId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/tweets": {
			"post": {
				"tags": [
					"动态"
				],
				"summary": "发布动态",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/tweets/user/{userId}": {
			"get": {
				"tags": [
					"动态"
				],
				"summary": "用户动态列表",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "userId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/tweets/{tweetId}": {
			"patch": {
				"tags": [
					"动态"
				],
				"summary": "修改动态",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "tweetId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			},
			"delete": {
				"tags": [
					"动态"
				],
				"summary": "删除动态",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"parameters": [
					{
						"type": "integer",
						"name": "tweetId",
						"in": "path",
						"required": true
					}
				],
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/dashboard/stats": {
			"get": {
				"tags": [
					"数据面板"
				],
				"summary": "频道统计",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		},
		"/dashboard/videos": {
			"get": {
				"tags": [
					"数据面板"
				],
				"summary": "频道视频",
				"produces": [
					"application/json"
				],
				"responses": {
					"200": {
						"description": "OK",
						"schema": {
							"$ref": "#/definitions/response.Response"
						}
					}
				},
				"security": [
					{
						"BearerAuth": []
					}
				]
			}
		}
	},
	"definitions": {
		"response.Response": {
			"type": "object",
			"properties": {
				"statusCode": {
					"type": "integer"
				},
				"data": {},
				"message": {
					"type": "string"
				},
				"success": {
					"type": "boolean"
				}
			}
		}
	},
	"securityDefinitions": {
		"BearerAuth": {
			"description": "输入格式: Bearer {token}",
			"type": "apiKey",
			"name": "Authorization",
			"in": "header"
		}
	}
}`

// SwaggerInfo 由 cmd/api 在启动时按配置修改 Host/Version
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "VidVerse API",
	Description:      "视频分享平台 API 服务",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
