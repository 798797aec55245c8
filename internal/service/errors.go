package service

import "errors"

// ErrNotFound 资源不存在，或存在但不属于调用方（对外不可区分）
var ErrNotFound = errors.New("not found")
