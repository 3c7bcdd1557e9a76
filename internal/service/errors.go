package service

import "errors"

var (
	ErrInvalidUsernameFormat = errors.New("username must be 4 to 10 lowercase letters or digits")
	ErrInvalidPasswordFormat = errors.New("password must be 8 to 15 letters or digits")
	ErrDuplicateUser         = errors.New("username is already taken")
	ErrUserNotFound          = errors.New("user not found")
	ErrWrongPassword         = errors.New("password does not match")
	ErrMissingToken          = errors.New("authorization token is missing")
	ErrInvalidToken          = errors.New("invalid or expired token") // 签名无效与过期对客户端不作区分
	ErrPostNotFound          = errors.New("post not found")
	ErrForbidden             = errors.New("no permission for this post")
	ErrInternalServer        = errors.New("internal server error")
)
