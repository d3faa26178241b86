package service

import "errors"

// Ошибки сервиса аутентификации. Наружу уходят только эти категории:
// "нет такого пользователя" и "неверный пароль" намеренно неразличимы
var (
	ErrUserExists         = errors.New("пользователь с таким именем уже существует")
	ErrInvalidCredentials = errors.New("неверное имя пользователя или пароль")
	ErrInactiveUser       = errors.New("пользователь неактивен")
	ErrInvalidToken       = errors.New("невалидный или отозванный токен")
	ErrUserNotFound       = errors.New("пользователь не найден")

	// ErrStorageUnavailable : БД или Redis недоступны, клиент может повторить запрос
	ErrStorageUnavailable = errors.New("хранилище недоступно")
)
