package service

import (
	"strconv"
	"strings"

	"vidverse/pkg/apperr"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// AppError 业务错误，定义见 apperr
type AppError = apperr.AppError

// ErrorKind 业务错误分类
type ErrorKind = apperr.Kind

const (
	KindInvalidArgument = apperr.KindInvalidArgument
	KindNotFound        = apperr.KindNotFound
	KindConflict        = apperr.KindConflict
	KindUnauthorized    = apperr.KindUnauthorized
	KindForbidden       = apperr.KindForbidden
	KindInternal        = apperr.KindInternal
)

func newError(kind ErrorKind, message string) *AppError {
	return apperr.New(kind, message)
}

// InvalidArgument 构造参数错误
func InvalidArgument(message string) *AppError {
	return newError(KindInvalidArgument, message)
}

var (
	ErrInvalidUserID     = newError(KindInvalidArgument, "Invalid user id")
	ErrInvalidChannelID  = newError(KindInvalidArgument, "Invalid channel id")
	ErrInvalidVideoID    = newError(KindInvalidArgument, "Invalid video id")
	ErrInvalidCommentID  = newError(KindInvalidArgument, "Invalid comment id")
	ErrInvalidTweetID    = newError(KindInvalidArgument, "Invalid tweet id")
	ErrInvalidPlaylistID = newError(KindInvalidArgument, "Invalid playlist id")
	ErrInvalidBody       = newError(KindInvalidArgument, "Invalid request body")

	ErrAllFieldsRequired       = newError(KindInvalidArgument, "All fields are required")
	ErrUsernameOrEmailRequired = newError(KindInvalidArgument, "Username or email is required")
	ErrUsernameMissing         = newError(KindInvalidArgument, "Username is missing")
	ErrAvatarRequired          = newError(KindInvalidArgument, "Avatar file is required")
	ErrCoverImageRequired      = newError(KindInvalidArgument, "Cover image file is required")
	ErrInvalidOldPassword      = newError(KindInvalidArgument, "Invalid old password")
	ErrTitleDescRequired       = newError(KindInvalidArgument, "Title and description are required")
	ErrVideoFileRequired       = newError(KindInvalidArgument, "Video file is required")
	ErrThumbnailRequired       = newError(KindInvalidArgument, "Thumbnail is required")
	ErrNoFieldsToUpdate        = newError(KindInvalidArgument, "Nothing to update")
	ErrContentRequired         = newError(KindInvalidArgument, "Content is required")
	ErrPlaylistNameRequired    = newError(KindInvalidArgument, "Name and description are required")
	ErrSearchQueryRequired     = newError(KindInvalidArgument, "Search query is required")

	ErrUserNotFound     = newError(KindNotFound, "User does not exist")
	ErrChannelNotFound  = newError(KindNotFound, "Channel does not exist")
	ErrVideoNotFound    = newError(KindNotFound, "Video not found")
	ErrCommentNotFound  = newError(KindNotFound, "Comment not found")
	ErrTweetNotFound    = newError(KindNotFound, "Tweet not found")
	ErrPlaylistNotFound = newError(KindNotFound, "Playlist not found")

	ErrUserExists         = newError(KindConflict, "User with email or username already exists")
	ErrEmailTaken         = newError(KindConflict, "Email is already in use")
	ErrVideoAlreadyInList = newError(KindConflict, "Video already exists in playlist")
	ErrVideoNotInList     = newError(KindConflict, "Video does not exist in playlist")
	ErrSelfSubscription   = newError(KindConflict, "You cannot subscribe to your own channel")

	ErrUnauthorized        = newError(KindUnauthorized, "Unauthorized request")
	ErrInvalidCredentials  = newError(KindUnauthorized, "Invalid user credentials")
	ErrInvalidAccessToken  = newError(KindUnauthorized, "Invalid access token")
	ErrInvalidRefreshToken = newError(KindUnauthorized, "Invalid refresh token")
	ErrRefreshTokenUsed    = newError(KindUnauthorized, "Refresh token is expired or used")

	ErrUploadFailed = newError(KindInternal, "Error while uploading file")
	ErrInternal     = apperr.Internal
)

// ParseID 解析路径中的 ID，只接受正的十进制整数
func ParseID(raw string, invalid *AppError) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}

// AsAppError 提取 AppError，其他错误统一视为内部错误
func AsAppError(err error) (*AppError, bool) {
	return apperr.As(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundOr 记录不存在时返回 notFound，否则原样返回
func notFoundOr(err error, notFound *AppError) error {
	if isNotFound(err) {
		return notFound
	}
	return err
}
