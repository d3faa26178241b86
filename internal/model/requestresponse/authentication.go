package requestresponse

// RegisterRequest : тело запроса на регистрацию
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50" example:"user1"`
	Password string `json:"password" validate:"required,min=8,max=72" example:"P@ssw0rd123"`
}

// LoginResponse : ответ на успешную аутентификацию
type LoginResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string `json:"refresh_token" example:"vcSi0369y1I62wOpxZFpgZ..."`
	TokenType    string `json:"token_type" example:"bearer"`
}

// RefreshTokenRequest : запрос на обновление access токена
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required" example:"vcSi0369y1I62wOpxZFpgZ..."`
}

// UserResponse : публичное представление пользователя
type UserResponse struct {
	UUID     string `json:"uuid" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Username string `json:"username" example:"user1"`
	IsActive bool   `json:"is_active" example:"true"`
	IsAdmin  bool   `json:"is_admin" example:"false"`
}

// MessageResponse : ответ с информационным сообщением
type MessageResponse struct {
	Message string `json:"message" example:"выход выполнен"`
}

// ErrorResponse : ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error" example:"Unauthorized"`
	Message string `json:"message" example:"невалидный токен"`
	Code    int    `json:"code" example:"401"`
}

// HealthResponse : состояние сервиса и его зависимостей
type HealthResponse struct {
	Status   string `json:"status" example:"healthy"`
	Database string `json:"database" example:"connected"`
	Redis    string `json:"redis" example:"connected"`
}
