package otp

import "errors"

var (
	// ErrCodeNotFound возвращается, когда для адреса нет выданного кода (не запрашивали или истёк TTL)
	ErrCodeNotFound = errors.New("otp.storage: code not found")

	// ErrStorage возвращается при ошибке обращения к хранилищу
	ErrStorage = errors.New("otp.storage: storage error")
)
