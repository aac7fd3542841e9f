package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"vidverse/internal/api/dto"
	"vidverse/internal/api/middleware"
	"vidverse/internal/api/response"
	"vidverse/internal/config"
	"vidverse/internal/service"

	"github.com/gin-gonic/gin"
)

const mb = 1 << 20

var errFileTooLarge = service.InvalidArgument("File is too large")

// parsePagination 读取 page/limit，缺省与上限见 dto.SetPageLimits
func parsePagination(c *gin.Context) dto.PageQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return dto.PageQuery{Page: page, Limit: limit}.Normalize()
}

// pathID 解析路径参数，失败时直接写出错误响应
func pathID(c *gin.Context, name string, invalid *service.AppError) (int64, bool) {
	id, err := service.ParseID(c.Param(name), invalid)
	if err != nil {
		response.Error(c, err)
		return 0, false
	}
	return id, true
}

// currentUserID 在 RequireAuth/OptionalAuth 之后调用；匿名请求返回 0
func currentUserID(c *gin.Context) int64 {
	id, _ := middleware.GetCurrentUserID(c)
	return id
}

// formFile 打开 multipart 文件字段；字段缺失返回 nil，调用方负责 close
func formFile(c *gin.Context, field string, maxMB int) (*service.File, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, service.ErrInvalidBody
	}
	if maxMB > 0 && header.Size > int64(maxMB)*mb {
		return nil, func() {}, errFileTooLarge
	}
	return openFile(header)
}

func openFile(header *multipart.FileHeader) (*service.File, func(), error) {
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &service.File{
		Name:        header.Filename,
		Size:        header.Size,
		ContentType: contentType,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

func imageLimit() int {
	return config.Get().Upload.MaxImageMB
}

func videoLimit() int {
	return config.Get().Upload.MaxVideoMB
}

// setAuthCookies 写入 httpOnly 的 access/refresh token cookie
func setAuthCookies(c *gin.Context, pair *dto.TokenPair) {
	cfg := config.Get()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken,
		int(cfg.JWT.AccessTTL().Seconds()), "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken,
		int(cfg.JWT.RefreshTTL().Seconds()), "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}

func clearAuthCookies(c *gin.Context) {
	cfg := config.Get()
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, "/", cfg.Cookie.Domain, cfg.Cookie.Secure, true)
}
