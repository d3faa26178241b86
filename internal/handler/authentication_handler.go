package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"auth-service/internal/model"
	"auth-service/internal/model/requestresponse"
	"auth-service/internal/ports"
	"auth-service/internal/service"
	"auth-service/internal/util"
)

type AuthenticationHandler struct {
	authenticationService ports.AuthenticationService
	validate              *validator.Validate
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService: authenticationService,
		validate:              validator.New(),
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя с уникальным именем
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UserResponse "Созданный пользователь"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или имя уже занято"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		util.HandleError(w, "username обязателен, пароль от 8 до 72 символов", http.StatusBadRequest)
		return
	}

	user, err := h.authenticationService.Register(ctx, req.Username, req.Password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse(user))
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдаёт пару access и refresh токенов по имени и паролю из form-data
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Имя пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} requestresponse.LoginResponse "Пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Пустые поля или неактивный пользователь"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверное имя или пароль"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		util.HandleError(w, "некорректная форма", http.StatusBadRequest)
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		util.HandleError(w, "username и password обязательны", http.StatusBadRequest)
		return
	}

	tokens, err := h.authenticationService.Login(ctx, username, password)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
	})
}

// Refresh godoc
// @Summary Обновление access токена
// @Description Выдаёт новый access токен по живому refresh токену. Refresh токен не ротируется
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Новый access токен и прежний refresh токен"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный или просроченный refresh токен"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Router /api/v1/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req requestresponse.RefreshTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		util.HandleError(w, "refresh_token обязателен", http.StatusBadRequest)
		return
	}

	tokens, err := h.authenticationService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		TokenType:    tokens.TokenType,
	})
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает access токен через blacklist и очищает refresh токен пользователя
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 503 {object} requestresponse.ErrorResponse "Хранилище недоступно"
// @Security ApiKeyAuth
// @Router /api/v1/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, accessToken, err := UserFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	if err := h.authenticationService.Logout(ctx, accessToken, user); err != nil {
		h.writeAuthError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "выход выполнен"})
}

// Me godoc
// @Summary Текущий пользователь
// @Description Возвращает пользователя, которому принадлежит access токен
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Security ApiKeyAuth
// @Router /api/v1/auth/me [get]
func (h *AuthenticationHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _, err := UserFromContext(r.Context())
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, userResponse(user))
}

// writeAuthError отображает ошибки сервиса на стабильные статусы.
// Детали внутренних ошибок остаются в логе
func (h *AuthenticationHandler) writeAuthError(w http.ResponseWriter, err error) {
	log.Println(err)
	switch {
	case errors.Is(err, service.ErrUserExists):
		util.HandleError(w, service.ErrUserExists.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		util.HandleError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrInactiveUser):
		util.HandleError(w, service.ErrInactiveUser.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidToken):
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
	case errors.Is(err, service.ErrUserNotFound):
		util.HandleError(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrStorageUnavailable):
		util.HandleError(w, "сервис временно недоступен", http.StatusServiceUnavailable)
	default:
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}

func userResponse(user *model.User) requestresponse.UserResponse {
	return requestresponse.UserResponse{
		UUID:     user.UUID,
		Username: user.Username,
		IsActive: user.IsActive,
		IsAdmin:  user.IsAdmin,
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("ошибка кодирования ответа:", err)
	}
}
